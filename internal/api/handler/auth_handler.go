package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aldodev/portfolio-api/internal/api/metrics"
	"github.com/aldodev/portfolio-api/internal/api/middleware"
	"github.com/aldodev/portfolio-api/internal/core/domain"
	"github.com/aldodev/portfolio-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	// cookieMaxAge mirrors the session idle timeout, in seconds.
	cookieMaxAge int
}

func NewAuthHandler(authService ports.AuthService, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{authService: authService, cookieMaxAge: cookieMaxAge}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Pin      string `json:"pin"      form:"pin"`
}

type validatePasswordRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type changePinRequest struct {
	OldPin string `json:"oldPin" validate:"required"`
	NewPin string `json:"newPin" validate:"required,numeric,min=4"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Login is the second (and final) step of the two-factor login: password and
// PIN together. On success the session cookie is set and the browser lands
// on the admin surface; on failure it returns to the login page with a
// generic marker that does not reveal which factor failed.
//
// @Summary      Login with password and PIN
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Success      303
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusSeeOther, "/login?error=1")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, req.Pin)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return c.Redirect(http.StatusSeeOther, "/login?error=1")
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	middleware.SetSessionCookie(c, token, h.cookieMaxAge)
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout revokes the session and clears the cookie. Revoking an unknown
// token still lands on the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
		metrics.SessionsActive.Dec()
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ValidatePassword checks the password factor only — step one of the login
// flow, also reused by the settings UI to confirm the current password. It
// never creates a session.
//
// @Summary      Validate the password factor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/auth/validate-password [post]
func (h *AuthHandler) ValidatePassword(c echo.Context) error {
	var req validatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, successResponse{Success: false})
	}

	err := h.authService.ValidateCredentials(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusOK, successResponse{Success: false})
		}
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ChangePassword rotates the password after re-validating the old one. The
// old-secret mismatch message is deliberately specific: the caller already
// holds a valid session.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, successResponse{Success: false, Message: err.Error()})
	}

	err := h.authService.ChangePassword(c.Request().Context(), middleware.Identity(c), req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOldSecretMismatch):
			return c.JSON(http.StatusOK, successResponse{Success: false, Message: "old password incorrect"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, successResponse{Success: false, Message: "admin account not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ChangePin is symmetric to ChangePassword for the PIN factor.
func (h *AuthHandler) ChangePin(c echo.Context) error {
	var req changePinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, successResponse{Success: false, Message: err.Error()})
	}

	err := h.authService.ChangePin(c.Request().Context(), middleware.Identity(c), req.OldPin, req.NewPin)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOldSecretMismatch):
			return c.JSON(http.StatusOK, successResponse{Success: false, Message: "old PIN incorrect"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, successResponse{Success: false, Message: "admin account not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// SessionInfo reports who the current session belongs to.
func (h *AuthHandler) SessionInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"identity": middleware.Identity(c)})
}
