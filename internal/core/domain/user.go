package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRoleNotFound = errors.New("role not found")

// User models a registered identity. PasswordHash is never serialized and
// users are never hard-deleted.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CustomClaims []Claim   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail produces the canonical form used for uniqueness checks and
// as the login name (the JWT subject).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
