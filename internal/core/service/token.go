package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

// minKeyLen is the minimum signing key length for HS256 (the hash output
// size, per RFC 2104).
const minKeyLen = 32

// TokenIssuer signs claim sets into compact HS256 JWTs. Issued tokens are
// stateless: nothing is persisted or cached, and a token becomes invalid only
// by expiry or signature mismatch.
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenIssuer validates the signing configuration once at construction.
// Key length is checked here, never per call.
func NewTokenIssuer(key, issuer, audience string, ttl time.Duration) (*TokenIssuer, error) {
	if len(key) < minKeyLen {
		return nil, fmt.Errorf("token issuer: signing key must be at least %d bytes, got %d", minKeyLen, len(key))
	}
	if issuer == "" || audience == "" {
		return nil, fmt.Errorf("token issuer: issuer and audience are required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token issuer: token duration must be positive")
	}
	return &TokenIssuer{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}, nil
}

// Issue signs the claim set. Expiry is issuance time plus the configured
// duration.
func (t *TokenIssuer) Issue(claims []domain.Claim) (string, error) {
	set := &claimSet{
		claims:   claims,
		issuer:   t.issuer,
		audience: t.audience,
		expires:  time.Now().UTC().Add(t.ttl),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, set)
	signed, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// claimSet adapts an ordered claim list to jwt.Claims. Repeated claim names
// (multiple roles) serialize as a JSON array under the shared name; single
// occurrences stay scalar.
type claimSet struct {
	claims   []domain.Claim
	issuer   string
	audience string
	expires  time.Time
}

var _ jwt.Claims = (*claimSet)(nil)

func (c *claimSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(c.claims))
	values := make(map[string][]string, len(c.claims))
	for _, claim := range c.claims {
		if _, seen := values[claim.Name]; !seen {
			names = append(names, claim.Name)
		}
		values[claim.Name] = append(values[claim.Name], claim.Value)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeField(&buf, name, values[name]); err != nil {
			return nil, err
		}
	}
	if len(names) > 0 {
		buf.WriteByte(',')
	}
	if err := writeField(&buf, "iss", []string{c.issuer}); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeField(&buf, "aud", []string{c.audience}); err != nil {
		return nil, err
	}
	buf.WriteString(fmt.Sprintf(`,"exp":%d`, c.expires.Unix()))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, name string, values []string) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')

	var encoded []byte
	if len(values) == 1 {
		encoded, err = json.Marshal(values[0])
	} else {
		encoded, err = json.Marshal(values)
	}
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

func (c *claimSet) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(c.expires), nil
}

func (c *claimSet) GetIssuedAt() (*jwt.NumericDate, error) { return nil, nil }

func (c *claimSet) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }

func (c *claimSet) GetIssuer() (string, error) { return c.issuer, nil }

func (c *claimSet) GetSubject() (string, error) {
	for _, claim := range c.claims {
		if claim.Name == domain.ClaimSubject {
			return claim.Value, nil
		}
	}
	return "", nil
}

func (c *claimSet) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings{c.audience}, nil
}
