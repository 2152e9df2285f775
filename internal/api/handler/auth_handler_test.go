package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

type stubAuthService struct {
	registerErr error
	loginResult *ports.LoginResult
	loginErr    error

	lastRegister ports.RegisterInput
	lastEmail    string
	lastPassword string
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	s.lastRegister = input
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "user-1", Email: input.Email}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.LoginResult, error) {
	s.lastEmail = email
	s.lastPassword = password
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func newContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Accepted(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"P@ssword1"}`
	c, rec := newContext(t, http.MethodPost, "/auth/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if svc.lastRegister.Email != "ada@example.com" {
		t.Fatalf("input not forwarded: %+v", svc.lastRegister)
	}
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	// Missing last_name and malformed email.
	body := `{"first_name":"Ada","email":"nope","password":"P@ssword1"}`
	c, _ := newContext(t, http.MethodPost, "/auth/register", body)

	err := h.Register(c)
	var ve domain.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	fields := make(map[string]bool)
	for _, fe := range ve {
		fields[fe.Field] = true
	}
	if !fields["last_name"] || !fields["email"] {
		t.Fatalf("expected last_name and email violations, got %v", ve)
	}
}

func TestAuthHandler_Register_DuplicateEmailPropagates(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.NewValidationError("email", "email already registered")}
	h := NewAuthHandler(svc)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"P@ssword1"}`
	c, _ := newContext(t, http.MethodPost, "/auth/register", body)

	err := h.Register(c)
	var ve domain.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(t, http.MethodPost, "/auth/register", `{"first_name": `)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginResult: &ports.LoginResult{
			UserID: "user-1",
			Email:  "ada@example.com",
			Token:  "signed.jwt.token",
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email":"ada@example.com","password":"P@ssword1"}`
	c, rec := newContext(t, http.MethodPost, "/auth/login", body)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["user_id"] != "user-1" || resp["email"] != "ada@example.com" || resp["token"] != "signed.jwt.token" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestAuthHandler_Login_ErrorsPropagate(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"unknown email", domain.ErrUserNotFound},
		{"wrong password", domain.ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{loginErr: tc.err})

			body := `{"email":"ada@example.com","password":"P@ssword1"}`
			c, _ := newContext(t, http.MethodPost, "/auth/login", body)

			if err := h.Login(c); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestAuthHandler_Login_ValidationBeforeService(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, _ := newContext(t, http.MethodPost, "/auth/login", `{"email":"","password":""}`)

	err := h.Login(c)
	var ve domain.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if svc.lastEmail != "" || svc.lastPassword != "" {
		t.Fatalf("service must not be called on invalid input")
	}
}
