package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"rideauth/config"
	deliverymw "rideauth/internal/delivery/http/middleware"
	"rideauth/internal/delivery/http/validator"
	"rideauth/internal/domain/entity"
	domainerrors "rideauth/internal/domain/errors"
	"rideauth/internal/domain/repository"
	"rideauth/internal/infra/auth"
	"rideauth/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPassengerRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.Passenger
}

func newMemPassengerRepo() *memPassengerRepo {
	return &memPassengerRepo{byEmail: make(map[string]*entity.Passenger)}
}

func (r *memPassengerRepo) FindByEmail(_ context.Context, email string) (*entity.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	passenger, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrPassengerNotFound
	}
	copied := *passenger

	return &copied, nil
}

func (r *memPassengerRepo) Create(_ context.Context, passenger *entity.Passenger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[passenger.Email]; ok {
		return domainerrors.ErrEmailTaken.WrapMessage("email already exists")
	}
	passenger.ID = uuid.New()
	passenger.CreatedAt = time.Now()
	stored := *passenger
	r.byEmail[passenger.Email] = &stored

	return nil
}

type memTxManager struct {
	repo repository.PassengerRepository
}

func (m *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(memRepoFactory{repo: m.repo})
}

type memRepoFactory struct {
	repo repository.PassengerRepository
}

func (f memRepoFactory) PassengerRepo() repository.PassengerRepository {
	return f.repo
}

// newTestApp assembles the HTTP surface with in-memory persistence: real
// handlers, middleware, validator and error handler, exactly as the server
// wires them.
func newTestApp(t *testing.T) (*echo.Echo, *memPassengerRepo) {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test_secret_key_very_long_for_testing",
			ExpirySeconds: 3600,
		},
		Cookie: config.CookieConfig{Name: "jwtToken"},
		Auth:   &config.AuthConfig{BcryptCost: 4},
	}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMemPassengerRepo()
	uc := impl.NewAuthService(&memTxManager{repo: repo}, repo, auth.NewBcryptHasher(cfg), tokens, logger)

	authHandler := NewAuthHandler(uc, cfg, logger)
	authMiddleware := deliverymw.NewAuthMiddleware(tokens, repo, cfg, logger)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = deliverymw.NewErrorMiddleware(logger).HandleHTTPError

	e.GET("/health", HealthCheck)
	authGroup := e.Group("/api/v1/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/signin", authHandler.Signin)
	authGroup.GET("/validate", authHandler.Validate, authMiddleware.Authenticate)

	return e, repo
}

func doJSON(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "jwtToken" {
			return cookie
		}
	}
	t.Fatal("session cookie not set")

	return nil
}

func TestAuthFlow_EndToEnd(t *testing.T) {
	e, repo := newTestApp(t)

	// Signup creates the account and stores a hash, not the password.
	rec := doJSON(e, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"A","email":"a@x.com","password":"p1","phoneNumber":"1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "p1\"")

	stored := repo.byEmail["a@x.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "p1", stored.PasswordHash)

	// Signin with the same credentials sets the session cookie.
	rec = doJSON(e, http.MethodPost, "/api/v1/auth/signin",
		`{"email":"a@x.com","password":"p1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.NotEmpty(t, cookie.Value)

	// The protected route accepts the cookie.
	rec = doJSON(e, http.MethodGet, "/api/v1/auth/validate", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a@x.com", body.Data["subject"])
}

func TestAuthFlow_SigninWrongPassword(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"A","email":"a@x.com","password":"p1","phoneNumber":"1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/signin",
		`{"email":"a@x.com","password":"p2"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "no cookie may be set on failed signin")
}

func TestAuthFlow_SigninDoesNotRevealAccountExistence(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"A","email":"a@x.com","password":"p1","phoneNumber":"1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := doJSON(e, http.MethodPost, "/api/v1/auth/signin",
		`{"email":"a@x.com","password":"p2"}`)
	unknownEmail := doJSON(e, http.MethodPost, "/api/v1/auth/signin",
		`{"email":"b@x.com","password":"p1"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthFlow_ValidateWithoutCookie(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/auth/validate", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthFlow_DuplicateSignup(t *testing.T) {
	e, _ := newTestApp(t)

	input := `{"name":"A","email":"a@x.com","password":"p1","phoneNumber":"1"}`
	rec := doJSON(e, http.MethodPost, "/api/v1/auth/signup", input)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/signup", input)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
}

func TestAuthFlow_SignupValidation(t *testing.T) {
	e, _ := newTestApp(t)

	// Missing email.
	rec := doJSON(e, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"A","password":"p1","phoneNumber":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")

	// Malformed body.
	rec = doJSON(e, http.MethodPost, "/api/v1/auth/signup", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
