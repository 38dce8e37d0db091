package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rideauth/config"
	"rideauth/internal/domain/entity"
	"rideauth/internal/domain/repository"
	"rideauth/internal/domain/service"
	"rideauth/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPassengerRepo struct {
	byEmail map[string]*entity.Passenger
}

func (r *stubPassengerRepo) FindByEmail(_ context.Context, email string) (*entity.Passenger, error) {
	passenger, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrPassengerNotFound
	}

	return passenger, nil
}

func (r *stubPassengerRepo) Create(_ context.Context, _ *entity.Passenger) error {
	return nil
}

func newTestMiddleware(t *testing.T, repo *stubPassengerRepo) (*AuthMiddleware, service.TokenService) {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test_secret_key_very_long_for_testing",
			ExpirySeconds: 3600,
		},
		Cookie: config.CookieConfig{Name: "jwtToken"},
		Auth:   &config.AuthConfig{PublicPaths: []string{"/health"}},
	}
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthMiddleware(tokens, repo, cfg, logger), tokens
}

// invoke runs the middleware against a request and reports whether the
// wrapped handler ran, how many times, and what principal it saw.
func invoke(t *testing.T, m *AuthMiddleware, req *http.Request) (rec *httptest.ResponseRecorder, handlerCalls int, principal *entity.Principal) {
	t.Helper()

	e := echo.New()
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Authenticate(func(c echo.Context) error {
		handlerCalls++
		principal, _ = PrincipalFrom(c)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, handlerCalls, principal
}

func TestAuthMiddleware_NoCookie(t *testing.T) {
	m, _ := newTestMiddleware(t, &stubPassengerRepo{byEmail: map[string]*entity.Passenger{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	rec, calls, _ := invoke(t, m, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, calls)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	repo := &stubPassengerRepo{byEmail: map[string]*entity.Passenger{
		"a@x.com": {Email: "a@x.com"},
	}}
	m, tokens := newTestMiddleware(t, repo)

	token, err := tokens.Issue("a@x.com", nil, -time.Second)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	req.AddCookie(&http.Cookie{Name: "jwtToken", Value: token})
	rec, calls, _ := invoke(t, m, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, calls)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	m, _ := newTestMiddleware(t, &stubPassengerRepo{byEmail: map[string]*entity.Passenger{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	req.AddCookie(&http.Cookie{Name: "jwtToken", Value: "not-a-token"})
	rec, calls, _ := invoke(t, m, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, calls)
}

func TestAuthMiddleware_DeletedPassenger(t *testing.T) {
	// Token verifies but the account no longer exists: a verified token
	// must not imply a currently-valid passenger.
	m, tokens := newTestMiddleware(t, &stubPassengerRepo{byEmail: map[string]*entity.Passenger{}})

	token, err := tokens.Issue("gone@x.com", nil, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	req.AddCookie(&http.Cookie{Name: "jwtToken", Value: token})
	rec, calls, _ := invoke(t, m, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, calls)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	repo := &stubPassengerRepo{byEmail: map[string]*entity.Passenger{
		"a@x.com": {Email: "a@x.com", Name: "A"},
	}}
	m, tokens := newTestMiddleware(t, repo)

	token, err := tokens.Issue("a@x.com", nil, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	req.AddCookie(&http.Cookie{Name: "jwtToken", Value: token})
	rec, calls, principal := invoke(t, m, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
	require.NotNil(t, principal)
	assert.Equal(t, "a@x.com", principal.Subject)
	assert.Empty(t, principal.Authorities)
}

func TestAuthMiddleware_PublicPathBypass(t *testing.T) {
	m, _ := newTestMiddleware(t, &stubPassengerRepo{byEmail: map[string]*entity.Passenger{}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec, calls, principal := invoke(t, m, req)

	// Bypassed requests reach the handler with no principal attached.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
	assert.Nil(t, principal)
}
