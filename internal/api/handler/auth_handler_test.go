package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aldodev/portfolio-api/internal/core/domain"
)

type stubAuthService struct {
	token       string
	loginErr    error
	validateErr error
	changeErr   error
	revoked     []string
}

func (s *stubAuthService) ValidateCredentials(_ context.Context, _, _ string) error {
	return s.validateErr
}

func (s *stubAuthService) Login(_ context.Context, _, _, _ string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.token, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, _, _ string) error {
	return s.changeErr
}

func (s *stubAuthService) ChangePin(_ context.Context, _, _, _ string) error {
	return s.changeErr
}

func newAuthTestContext(t *testing.T, method, target string, form url.Values, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin_Success(t *testing.T) {
	svc := &stubAuthService{token: "abc123"}
	h := NewAuthHandler(svc, 1800)

	form := url.Values{"username": {"admin"}, "password": {"p1"}, "pin": {"1234"}}
	c, rec := newAuthTestContext(t, http.MethodPost, "/login", form, "")

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", loc)
	}

	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "session_id=abc123") {
		t.Fatalf("expected session cookie, got %q", cookie)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("cookie must be HttpOnly, got %q", cookie)
	}
	if !strings.Contains(cookie, "Max-Age=1800") {
		t.Fatalf("cookie Max-Age must mirror the idle timeout, got %q", cookie)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, 1800)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}, "pin": {"1234"}}
	c, rec := newAuthTestContext(t, http.MethodPost, "/login", form, "")

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=1" {
		t.Fatalf("expected generic failure redirect, got %q", loc)
	}
	if cookie := rec.Header().Get("Set-Cookie"); cookie != "" {
		t.Fatalf("failed login must not set a cookie, got %q", cookie)
	}
}

func TestLogout_RevokesAndClearsCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, 1800)

	c, rec := newAuthTestContext(t, http.MethodGet, "/logout", url.Values{}, "")
	c.Request().AddCookie(&http.Cookie{Name: "session_id", Value: "abc123"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout handler error: %v", err)
	}
	if len(svc.revoked) != 1 || svc.revoked[0] != "abc123" {
		t.Fatalf("expected token revoked, got %v", svc.revoked)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if cookie := rec.Header().Get("Set-Cookie"); !strings.Contains(cookie, "Max-Age=0") {
		t.Fatalf("expected cookie clearing, got %q", cookie)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"valid", nil, `"success":true`},
		{"invalid", domain.ErrInvalidCredentials, `"success":false`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{validateErr: tt.err}, 1800)
			c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/validate-password", nil, `{"password":"p1"}`)

			if err := h.ValidatePassword(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Fatalf("expected body to contain %s, got %s", tt.want, rec.Body.String())
			}
		})
	}
}

func TestChangePassword_OldMismatch(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{changeErr: domain.ErrOldSecretMismatch}, 1800)
	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/change-password", nil,
		`{"oldPassword":"wrong","newPassword":"longenough"}`)
	c.Set("identity", "admin")

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"success":false`) || !strings.Contains(body, "old password incorrect") {
		t.Fatalf("expected specific old-secret message, got %s", body)
	}
}

func TestChangePassword_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 1800)
	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/change-password", nil,
		`{"oldPassword":"p1","newPassword":"longenough"}`)
	c.Set("identity", "admin")

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("expected success, got %s", rec.Body.String())
	}
}

func TestChangePassword_RejectsShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 1800)
	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/change-password", nil,
		`{"oldPassword":"p1","newPassword":"short"}`)
	c.Set("identity", "admin")

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChangePin_OldMismatch(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{changeErr: domain.ErrOldSecretMismatch}, 1800)
	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/change-pin", nil,
		`{"oldPin":"0000","newPin":"5678"}`)
	c.Set("identity", "admin")

	if err := h.ChangePin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "old PIN incorrect") {
		t.Fatalf("expected old PIN message, got %s", rec.Body.String())
	}
}
