package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aldodev/portfolio-api/internal/infrastructure/session"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClockedRegistry(timeout time.Duration) (*session.MemoryRegistry, *testClock) {
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return session.NewMemoryRegistryWithClock(timeout, clock.Now), clock
}

func requestWithCookie(token string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	return req, httptest.NewRecorder()
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	registry, _ := newClockedRegistry(30 * time.Minute)
	token, _ := registry.Create(context.Background(), "admin")

	req, rec := requestWithCookie(token)
	c := e.NewContext(req, rec)

	called := false
	handler := Session(registry)(func(c echo.Context) error {
		called = true
		if Identity(c) != "admin" {
			t.Fatalf("identity not attached, got %q", Identity(c))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	e := echo.New()
	registry, _ := newClockedRegistry(30 * time.Minute)

	req, rec := requestWithCookie("")
	c := e.NewContext(req, rec)

	handler := Session(registry)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestSessionMiddleware_UnknownToken(t *testing.T) {
	e := echo.New()
	registry, _ := newClockedRegistry(30 * time.Minute)

	req, rec := requestWithCookie("deadbeefdeadbeefdeadbeefdeadbeef")
	c := e.NewContext(req, rec)

	handler := Session(registry)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestSessionMiddleware_ExpiredToken(t *testing.T) {
	e := echo.New()
	timeout := 30 * time.Minute
	registry, clock := newClockedRegistry(timeout)
	token, _ := registry.Create(context.Background(), "admin")
	clock.Advance(timeout + time.Minute)

	req, rec := requestWithCookie(token)
	c := e.NewContext(req, rec)

	handler := Session(registry)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=timeout" {
		t.Fatalf("expected timeout redirect, got %q", loc)
	}

	// The dead cookie must be cleared so the client stops resending it.
	setCookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, SessionCookie+"=;") && !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("expected cookie clearing header, got %q", setCookie)
	}
}

func TestSessionMiddleware_RollingRefresh(t *testing.T) {
	e := echo.New()
	timeout := 30 * time.Minute
	registry, clock := newClockedRegistry(timeout)
	token, _ := registry.Create(context.Background(), "admin")

	handler := Session(registry)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Two touches just inside the window keep the session alive well past
	// the original deadline.
	for i := 0; i < 2; i++ {
		clock.Advance(timeout - time.Minute)
		req, rec := requestWithCookie(token)
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("touch %d: expected 200, got %d", i, rec.Code)
		}
	}
}
