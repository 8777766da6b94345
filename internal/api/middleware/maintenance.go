package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aldodev/portfolio-api/internal/api/metrics"
	"github.com/aldodev/portfolio-api/internal/core/ports"
)

// staticExtensions always pass the gate: the maintenance page and the admin
// UI must keep rendering their own styling during maintenance.
var staticExtensions = map[string]struct{}{
	".css": {}, ".js": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	".svg": {}, ".ico": {}, ".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".map": {}, ".webp": {}, ".avif": {}, ".mp4": {}, ".webm": {},
}

// excludedPrefixes always pass regardless of the flag. Locking out /login
// or the auth API would leave no path to disable maintenance.
var excludedPrefixes = []string{"/login", "/auth", "/maintenance", "/api/auth", "/health", "/metrics"}

// Maintenance blocks public traffic while the maintenance flag is set.
// Exclusions are evaluated before the flag is read, then a valid admin
// session bypasses the gate. The gate only ever chooses pass vs redirect to
// the maintenance page; it never rejects a request for carrying an invalid
// token. A failed settings read fails open so a storage hiccup cannot take
// the whole site down.
func Maintenance(settings ports.SettingsRepository, registry ports.SessionRegistry, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := c.Request().URL.Path
			if isStaticAsset(p) || isExcluded(p) {
				return next(c)
			}

			cfg, err := settings.Get(c.Request().Context())
			if err != nil {
				log.Warn().Err(err).Str("path", p).Msg("maintenance check failed, failing open")
				return next(c)
			}
			if !cfg.Maintenance {
				return next(c)
			}

			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				if identity, err := registry.Touch(c.Request().Context(), cookie.Value); err == nil {
					c.Set(identityKey, identity)
					metrics.MaintenanceRequestsTotal.WithLabelValues("bypass").Inc()
					return next(c)
				}
			}

			metrics.MaintenanceRequestsTotal.WithLabelValues("redirect").Inc()
			return c.Redirect(http.StatusSeeOther, "/maintenance")
		}
	}
}

func isStaticAsset(p string) bool {
	_, ok := staticExtensions[strings.ToLower(path.Ext(p))]
	return ok
}

func isExcluded(p string) bool {
	p = strings.ToLower(p)
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
