package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aldodev/portfolio-api/internal/api/metrics"
	"github.com/aldodev/portfolio-api/internal/core/domain"
	"github.com/aldodev/portfolio-api/internal/core/ports"
)

// SessionCookie is the cookie carrying the opaque session token. The cookie
// holds the token and nothing else; all session metadata stays server-side.
const SessionCookie = "session_id"

const identityKey = "identity"

// Session guards routes that require a logged-in admin. A valid token has
// its activity refreshed (rolling expiry) and the resolved identity attached
// to the request context; anything else short-circuits with a redirect to
// the login surface. Expired sessions additionally clear the dead cookie and
// carry a timeout marker so the login page can say why.
func Session(registry ports.SessionRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			identity, err := registry.Touch(c.Request().Context(), cookie.Value)
			switch {
			case err == nil:
				c.Set(identityKey, identity)
				return next(c)
			case errors.Is(err, domain.ErrSessionExpired):
				metrics.SessionTimeoutsTotal.Inc()
				metrics.SessionsActive.Dec()
				ClearSessionCookie(c)
				return c.Redirect(http.StatusSeeOther, "/login?error=timeout")
			case errors.Is(err, domain.ErrSessionInvalid):
				return c.Redirect(http.StatusSeeOther, "/login")
			default:
				return fmt.Errorf("touch session: %w", err)
			}
		}
	}
}

// Identity returns the admin identity attached by Session, or "" when the
// request is unauthenticated.
func Identity(c echo.Context) string {
	identity, _ := c.Get(identityKey).(string)
	return identity
}

// SetSessionCookie installs the session token. Max-Age mirrors the idle
// timeout; server-side expiry governs actual validity, so the cookie is not
// rewritten on every request.
func SetSessionCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
}

// ClearSessionCookie tells the client to drop its token so it stops
// resending a dead credential.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
