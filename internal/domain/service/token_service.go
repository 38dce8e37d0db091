package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification errors returned by TokenService.Verify. Callers must treat
// every kind as "unauthenticated"; the distinction exists for logging only
// and is never surfaced to the HTTP caller.
var (
	// ErrTokenMalformed is returned when the token string cannot be parsed
	// structurally.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignature is returned when the signature does not verify under
	// the process signing key.
	ErrTokenSignature = errors.New("token signature is invalid")
	// ErrTokenExpired is returned when the signature verifies but the token
	// is outside its validity window.
	ErrTokenExpired = errors.New("token is expired")
)

// Claims is the verified content of a session token: the fixed identity
// claim (subject) plus an explicit, schema-less side mapping kept for
// forward compatibility. Business logic must not depend on Extra.
type Claims struct {
	Extra map[string]any `json:"ext,omitempty"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session
// tokens. It abstracts the token format from the use cases; implementations
// are stateless and safe for concurrent use.
type TokenService interface {
	// Issue creates a signed token asserting the given subject, valid for
	// ttl from now. extra may be nil. A non-positive ttl is permitted and
	// produces an immediately expired token.
	Issue(subject string, extra map[string]any, ttl time.Duration) (string, error)

	// Verify parses and validates a token string, returning its claims.
	// Failures map to ErrTokenMalformed, ErrTokenSignature or
	// ErrTokenExpired, checked in that order.
	Verify(tokenString string) (*Claims, error)

	// TTL returns the configured validity window for issued session tokens.
	TTL() time.Duration
}
