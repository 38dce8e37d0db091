package auth

import (
	"time"

	"rideauth/config"
	"rideauth/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface
// using HMAC-SHA256 signed JWTs. It holds the process signing key, which is
// immutable after startup, so the service is safe for concurrent use
// without locking.
type jwtService struct {
	secret []byte        // Symmetric signing key shared by all verifying instances.
	ttl    time.Duration // Validity window for issued session tokens.
}

// NewJWTService is the constructor for jwtService. It fails fast when no
// signing key is configured.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.JWT.Secret),
		ttl:    cfg.JWT.TTL(),
	}, nil
}

// Issue creates a signed token for the given subject. A non-positive ttl is
// not an error: the token is simply expired on arrival.
func (s *jwtService) Issue(subject string, extra map[string]any, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Extra: extra,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify parses and validates a token string. The library checks the
// signature before claim validity, so a tampered but unexpired token
// reports a signature error, and structural garbage reports malformed.
// No clock skew leeway is applied; issuer and verifier are assumed to
// share a clock within the TTL's tolerance.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Reject any token whose header names a different algorithm family.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, service.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, service.ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, service.ErrTokenExpired
		default:
			return nil, errors.Wrap(err, "failed to verify token")
		}
	}

	return claims, nil
}

// TTL returns the configured validity window for issued session tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
