package service

import (
	"github.com/google/uuid"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

// ComposeClaims builds the ordered claim set for an authenticated user:
// sub, email, jti, uid, one role claim per bound role, then any custom
// claims. The jti is freshly generated so two logins by the same user never
// share a token id. Claim names are not deduplicated; multiple roles each
// produce a separate role claim.
//
// The set is a snapshot: a role added after issuance is not reflected until
// the next login.
func ComposeClaims(user *domain.User, roles []string, custom []domain.Claim) []domain.Claim {
	claims := make([]domain.Claim, 0, 4+len(roles)+len(custom))
	claims = append(claims,
		domain.Claim{Name: domain.ClaimSubject, Value: domain.NormalizeEmail(user.Email)},
		domain.Claim{Name: domain.ClaimEmail, Value: user.Email},
		domain.Claim{Name: domain.ClaimTokenID, Value: uuid.NewString()},
		domain.Claim{Name: domain.ClaimUserID, Value: user.ID},
	)
	for _, role := range roles {
		claims = append(claims, domain.Claim{Name: domain.ClaimRole, Value: role})
	}
	claims = append(claims, custom...)
	return claims
}
