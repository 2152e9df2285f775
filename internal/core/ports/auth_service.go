package ports

import (
	"context"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

// RegisterInput carries the fields required to create a new identity.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	UserID string
	Email  string
	Token  string
}

// AuthService defines the registration and login use cases.
type AuthService interface {
	// Register validates input, creates the credential record, and binds the
	// default role. No token is issued at registration.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login verifies the credential and issues a signed bearer token.
	// Returns domain.ErrUserNotFound for an unknown email and
	// domain.ErrInvalidCredentials for a password mismatch.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
