package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by the Auth middleware.
const (
	CtxUserID  = "uid"
	CtxSubject = "sub"
	CtxEmail   = "email"
	CtxRoles   = "roles"
)

// Auth validates the bearer token and injects its claims into the request
// context. Signature, expiry, issuer, and audience are all checked; only
// HS256 is accepted.
func Auth(secret, issuer, audience string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims,
				func(token *jwt.Token) (interface{}, error) {
					return key, nil
				},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithIssuer(issuer),
				jwt.WithAudience(audience),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, stringClaim(claims, "uid"))
			c.Set(CtxSubject, stringClaim(claims, "sub"))
			c.Set(CtxEmail, stringClaim(claims, "email"))
			c.Set(CtxRoles, roleClaims(claims))

			return next(c)
		}
	}
}

func stringClaim(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}

// roleClaims extracts the role claim, which is a scalar for a single role and
// a JSON array when the identity holds several.
func roleClaims(claims jwt.MapClaims) []string {
	switch v := claims["role"].(type) {
	case string:
		return []string{v}
	case []any:
		roles := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	default:
		return nil
	}
}
