package domain

// Claim is a named fact about an identity. Claims are carried as an ordered
// list because claim names may repeat: a user with two roles produces two
// "role" claims, and neither is deduplicated.
type Claim struct {
	Name  string `json:"name" bson:"name"`
	Value string `json:"value" bson:"value"`
}

// Registered claim names used in issued tokens.
const (
	ClaimSubject = "sub"
	ClaimEmail   = "email"
	ClaimTokenID = "jti"
	ClaimUserID  = "uid"
	ClaimRole    = "role"
)
