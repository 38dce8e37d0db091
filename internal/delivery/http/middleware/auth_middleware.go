package middleware

import (
	"log/slog"

	"rideauth/config"
	"rideauth/internal/delivery/http/response"
	"rideauth/internal/domain/entity"
	"rideauth/internal/domain/repository"
	"rideauth/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// principalContextKey is where the authenticated principal lives on the echo
// context. The context is per-request, so the principal is torn down with it.
const principalContextKey = "principal"

// AuthMiddleware gates protected routes on a valid session cookie. Per
// request it moves through: bypass (public path) or check; a check either
// attaches a principal and continues, or rejects with 401 without invoking
// the handler.
type AuthMiddleware struct {
	tokens     service.TokenService
	passengers repository.PassengerRepository
	cookieName string
	// public is the configured allow-list of request paths that bypass
	// authentication. Matching is by exact path.
	public map[string]struct{}
	logger *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	tokens service.TokenService,
	passengers repository.PassengerRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthMiddleware {
	public := make(map[string]struct{})
	if cfg.Auth != nil {
		for _, path := range cfg.Auth.PublicPaths {
			public[path] = struct{}{}
		}
	}

	return &AuthMiddleware{
		tokens:     tokens,
		passengers: passengers,
		cookieName: cfg.Cookie.Name,
		public:     public,
		logger:     logger,
	}
}

// Authenticate is the core middleware function. It converts the session
// cookie into an authenticated principal or short-circuits with 401. All
// rejection reasons share one response body; the distinction is logged only.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := m.public[c.Request().URL.Path]; ok {
			// Public route: proceed with no principal attached.
			return next(c)
		}

		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			m.logger.Debug("Request without session cookie", "path", c.Request().URL.Path)

			return m.reject(c)
		}

		claims, err := m.tokens.Verify(cookie.Value)
		if err != nil {
			// The raw token value is never logged.
			m.logger.Debug("Session token rejected", "reason", err.Error())

			return m.reject(c)
		}
		if claims.Subject == "" {
			m.logger.Debug("Session token carries no subject")

			return m.reject(c)
		}

		// A verified token does not imply a currently-valid passenger; the
		// account may have been deleted after issuance. The lookup uses the
		// request context, so cancellation propagates and no principal is
		// attached.
		passenger, err := m.passengers.FindByEmail(c.Request().Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, repository.ErrPassengerNotFound) {
				m.logger.Debug("Session token for unknown passenger")

				return m.reject(c)
			}
			m.logger.Error("Identity store lookup failed during authentication", "error", err)

			return m.reject(c)
		}

		c.Set(principalContextKey, entity.NewPrincipal(passenger))

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context) error {
	return response.Unauthorized(c, "UNAUTHORIZED", "authentication required")
}

// PrincipalFrom returns the authenticated principal attached to the request
// context, if any.
func PrincipalFrom(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(principalContextKey).(*entity.Principal)

	return principal, ok
}
