package domain

import "strings"

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Role is a named permission group. The set is seeded at bootstrap and never
// created at runtime.
type Role struct {
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
}

// SeededRoles returns the fixed role set installed at bootstrap.
func SeededRoles() []Role {
	return []Role{
		{Name: RoleUser, NormalizedName: NormalizeRoleName(RoleUser)},
		{Name: RoleAdmin, NormalizedName: NormalizeRoleName(RoleAdmin)},
	}
}

// NormalizeRoleName produces the canonical form used for role uniqueness.
func NormalizeRoleName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
