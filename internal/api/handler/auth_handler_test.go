package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/crmlite/crm-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(name, email, password string) (string, *domain.User, error)
	loginFn    func(email, password string) (string, *domain.User, error)
	currentFn  func(userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(_ context.Context, name, email, password string) (string, *domain.User, error) {
	return s.registerFn(name, email, password)
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(email, password)
}

func (s *stubAuthService) CurrentUser(_ context.Context, userID string) (*domain.User, error) {
	return s.currentFn(userID)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(name, email, password string) (string, *domain.User, error) {
			if name != "Alice" || email != "alice@x.com" || password != "hunter2" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return "tok123", &domain.User{ID: "u1", Name: name, Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/signup", `{"name":"Alice","email":"alice@x.com","password":"hunter2"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "tok123" || resp.User.ID != "u1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must never carry password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ServiceErrorPropagates(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_, _, _ string) (string, *domain.User, error) {
			return "", nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/auth/signup", `{"name":"Alice","email":"alice@x.com","password":"x"}`)
	if err := h.Register(c); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken to propagate, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(email, password string) (string, *domain.User, error) {
			return "tok456", &domain.User{ID: "u1", Email: email}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"alice@x.com","password":"hunter2"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tok456") {
		t.Fatalf("token missing from response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_, _ string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/auth/login", `{"email":"alice@x.com","password":"wrong"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	svc := &stubAuthService{
		currentFn: func(userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("userID = %s, want u1", userID)
			}
			return &domain.User{ID: "u1", Name: "Alice", Email: "alice@x.com"}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/me", "")
	c.Set("user_id", "u1")
	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice@x.com") {
		t.Fatalf("user missing from response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_NoClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodGet, "/me", "")
	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
