package ports

import (
	"context"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

// CredentialStore is the durable repository of identities, password hashes,
// and role bindings. It is the single serialization point between concurrent
// requests; uniqueness races are resolved by the storage layer itself.
type CredentialStore interface {
	// FindByEmail looks up an identity by its normalized email.
	// Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create persists a new identity. The user's PasswordHash must already be
	// set; plaintext passwords never reach the store. A duplicate email is
	// reported as domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetRoles returns the role names currently bound to the identity.
	GetRoles(ctx context.Context, userID string) ([]string, error)

	// GetCustomClaims returns the custom claims attached to the identity,
	// stored separately from role bindings.
	GetCustomClaims(ctx context.Context, userID string) ([]domain.Claim, error)

	// AddRole binds the identity to a role. The role must exist in the seeded
	// role set; unknown roles are reported as domain.ErrRoleNotFound.
	AddRole(ctx context.Context, userID, roleName string) error
}

// PasswordHasher is a one-way, salted hash with self-contained verification.
type PasswordHasher interface {
	// Hash produces a salted hash blob for the plaintext. Salts are unique
	// per call and embedded in the blob.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the hash blob. A malformed
	// blob is treated as a non-match, never a fault.
	Verify(plaintext, hash string) bool
}
