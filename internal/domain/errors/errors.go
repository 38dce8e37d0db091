// Package errors defines the application error taxonomy shared by the
// usecase and delivery layers.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError is the interface for application-specific errors. The delivery
// layer uses it to translate domain outcomes into HTTP responses without
// inspecting error strings.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
	Details() string   // Optional detailed information
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types.
var (
	// ErrInvalidCredentials is the single outward-facing authentication
	// failure. A missing account and a wrong password both map here so the
	// response never reveals whether the email exists.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"email or password is incorrect",
		"",
	)

	// ErrUnauthorized is returned by the authentication middleware when a
	// request to a protected route carries no valid session.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication required",
		"",
	)

	// ErrEmailTaken is returned when a signup collides with an existing
	// passenger email. Safe to report distinctly; it reveals no secret
	// beyond what the caller already submitted.
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"this email is already registered",
		"",
	)

	// ErrValidation is returned when request input is missing or ill-formed.
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"invalid request input",
		"",
	)

	// ErrPasswordHashFailed is returned when the hasher cannot produce a
	// digest. Surfaced as an internal error; the cause is never credential
	// material.
	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	// ErrUpstreamUnavailable is returned when the identity store cannot be
	// reached. The only error class worth a retry, and that retry belongs
	// to the caller, not this service.
	ErrUpstreamUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"UPSTREAM_UNAVAILABLE",
		"identity store is unavailable",
		"",
	)

	// ErrPassengerCreationFailed is returned for persistence failures during
	// signup that are not uniqueness conflicts.
	ErrPassengerCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSENGER_CREATION_FAILED",
		"failed to create passenger",
		"",
	)
)
