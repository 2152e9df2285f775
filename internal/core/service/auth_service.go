package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

const maxNameLen = 50

// AuthService implements registration and login. It owns no mutable state;
// every request flows through the credential store, which is the single
// point of serialization.
type AuthService struct {
	store       ports.CredentialStore
	hasher      ports.PasswordHasher
	issuer      *TokenIssuer
	audit       ports.AuditSink
	defaultRole string
	log         zerolog.Logger
}

func NewAuthService(
	store ports.CredentialStore,
	hasher ports.PasswordHasher,
	issuer *TokenIssuer,
	audit ports.AuditSink,
	defaultRole string,
	log zerolog.Logger,
) *AuthService {
	if defaultRole == "" {
		defaultRole = domain.RoleUser
	}
	return &AuthService{
		store:       store,
		hasher:      hasher,
		issuer:      issuer,
		audit:       audit,
		defaultRole: defaultRole,
		log:         log,
	}
}

// Register validates input, persists the credential record, and binds the
// default role. No token is issued; the user must log in separately.
//
// Role binding is not transactional with the create: when binding fails the
// identity stays persisted and the caller receives the fault. This mirrors
// the store's own atomicity guarantees rather than inventing a rollback.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if ve := validateRegisterInput(input); len(ve) > 0 {
		return nil, ve
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.recordAudit(ports.AuditRegister, input.Email, "", false, "email taken")
			return nil, domain.NewValidationError("email", "email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.store.AddRole(ctx, created.ID, s.defaultRole); err != nil {
		// The identity is already persisted at this point; surface the fault
		// without undoing the create.
		s.log.Error().Err(err).Str("user_id", created.ID).Str("role", s.defaultRole).
			Msg("default role binding failed after create")
		return nil, fmt.Errorf("bind default role: %w", err)
	}
	created.Roles = append(created.Roles, s.defaultRole)

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	s.recordAudit(ports.AuditRegister, created.Email, created.ID, true, "")

	return created, nil
}

// Login verifies the credential and issues a signed token. Unknown emails
// and password mismatches are distinct outcomes (ErrUserNotFound vs
// ErrInvalidCredentials); the API boundary maps them to 404 and 401.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordAudit(ports.AuditLogin, email, "", false, "unknown email")
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordAudit(ports.AuditLogin, email, user.ID, false, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	s.recordAudit(ports.AuditLogin, user.Email, user.ID, true, "")

	return &ports.LoginResult{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}, nil
}

func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	roles, err := s.store.GetRoles(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("get roles: %w", err)
	}
	custom, err := s.store.GetCustomClaims(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("get custom claims: %w", err)
	}
	return s.issuer.Issue(ComposeClaims(user, roles, custom))
}

// recordAudit enqueues an audit event. The sink is fire-and-forget; a nil
// sink disables auditing.
func (s *AuthService) recordAudit(eventType, email, userID string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEvent{
		Type:      eventType,
		Email:     domain.NormalizeEmail(email),
		UserID:    userID,
		Success:   success,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}

func validateRegisterInput(input ports.RegisterInput) domain.ValidationErrors {
	var ve domain.ValidationErrors
	if input.FirstName == "" {
		ve = append(ve, domain.FieldError{Field: "first_name", Reason: "first name is required"})
	} else if len(input.FirstName) > maxNameLen {
		ve = append(ve, domain.FieldError{Field: "first_name", Reason: fmt.Sprintf("first name must be at most %d characters", maxNameLen)})
	}
	if input.LastName == "" {
		ve = append(ve, domain.FieldError{Field: "last_name", Reason: "last name is required"})
	} else if len(input.LastName) > maxNameLen {
		ve = append(ve, domain.FieldError{Field: "last_name", Reason: fmt.Sprintf("last name must be at most %d characters", maxNameLen)})
	}
	if input.Email == "" {
		ve = append(ve, domain.FieldError{Field: "email", Reason: "email is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		ve = append(ve, domain.FieldError{Field: "email", Reason: "email must be a valid address"})
	}
	if input.Password == "" {
		ve = append(ve, domain.FieldError{Field: "password", Reason: "password is required"})
	}
	return ve
}
