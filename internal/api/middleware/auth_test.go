package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testIssuer   = "bookstore-api"
	testAudience = "bookstore-clients"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "ada@example.com",
		"email": "ada@example.com",
		"uid":   "user-1",
		"role":  "User",
		"iss":   testIssuer,
		"aud":   testAudience,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(testSecret, testIssuer, testAudience)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims())

	rec, c := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if c.Get(CtxUserID) != "user-1" {
		t.Fatalf("uid not injected: %v", c.Get(CtxUserID))
	}
	if c.Get(CtxSubject) != "ada@example.com" {
		t.Fatalf("sub not injected: %v", c.Get(CtxSubject))
	}
	if c.Get(CtxEmail) != "ada@example.com" {
		t.Fatalf("email not injected: %v", c.Get(CtxEmail))
	}
	roles, _ := c.Get(CtxRoles).([]string)
	if len(roles) != 1 || roles[0] != "User" {
		t.Fatalf("roles not injected: %v", roles)
	}
}

func TestAuth_MultipleRoles(t *testing.T) {
	claims := validClaims()
	claims["role"] = []string{"User", "Admin"}
	token := signToken(t, testSecret, claims)

	rec, c := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	roles, _ := c.Get(CtxRoles).([]string)
	if len(roles) != 2 || roles[0] != "User" || roles[1] != "Admin" {
		t.Fatalf("expected both roles, got %v", roles)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "just-a-token"} {
		rec, _ := runAuth(t, header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuth_WrongSignature(t *testing.T) {
	token := signToken(t, "ffffffffffffffffffffffffffffffff", validClaims())

	rec, _ := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signToken(t, testSecret, claims)

	rec, _ := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MissingExpiry(t *testing.T) {
	claims := validClaims()
	delete(claims, "exp")
	token := signToken(t, testSecret, claims)

	rec, _ := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("token without exp must be rejected, got %d", rec.Code)
	}
}

func TestAuth_WrongIssuer(t *testing.T) {
	claims := validClaims()
	claims["iss"] = "someone-else"
	token := signToken(t, testSecret, claims)

	rec, _ := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongAudience(t *testing.T) {
	claims := validClaims()
	claims["aud"] = "other-clients"
	token := signToken(t, testSecret, claims)

	rec, _ := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_UnsignedAlgorithmRejected(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec, _ := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("alg=none must be rejected, got %d", rec.Code)
	}
}
