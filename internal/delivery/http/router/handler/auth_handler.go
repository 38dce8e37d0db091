// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"rideauth/config"
	"rideauth/internal/delivery/http/middleware"
	"rideauth/internal/delivery/http/response"
	"rideauth/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

// Signup handles the passenger registration request. The response carries
// the public projection only, never the stored hash.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input *usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "VALIDATION_ERROR", "Invalid signup input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Passenger, "Passenger registered successfully")
}

// Signin handles the credential verification request. On success the minted
// session token travels only as an HTTP-only cookie; the body confirms the
// outcome without revealing whether the email exists on failure.
func (h *AuthHandler) Signin(c echo.Context) error {
	var input *usecase.SigninInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "VALIDATION_ERROR", "Invalid signin input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signin(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Cookie.Name,
		Value:    output.Token,
		Path:     "/",
		MaxAge:   h.cfg.JWT.ExpirySeconds,
		HttpOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, http.StatusOK, map[string]bool{"authenticated": true}, "Signin successful")
}

// Validate reports whether the request carries an authenticated principal.
// The route sits behind the authentication middleware, so reaching this
// handler without a principal means the pipeline is miswired.
func (h *AuthHandler) Validate(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "authentication required")
	}

	return response.Success(c, http.StatusOK, map[string]string{"subject": principal.Subject}, "Session is valid")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
