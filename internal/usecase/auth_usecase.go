// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"rideauth/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new passenger.
type SignupInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=32"`
}

// SigninInput defines the data required for a passenger to sign in.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// PassengerOutput is the public projection of a passenger record. It never
// carries the password hash.
type PassengerOutput struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewPassengerOutput builds the public projection from a stored passenger.
func NewPassengerOutput(p *entity.Passenger) *PassengerOutput {
	return &PassengerOutput{
		ID:          p.ID.String(),
		Name:        p.Name,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		CreatedAt:   p.CreatedAt,
	}
}

// SignupOutput returns the newly created passenger's public projection.
type SignupOutput struct {
	Passenger *PassengerOutput
}

// SigninOutput returns the minted session token after a successful signin.
// The delivery layer is responsible for transporting it as a cookie; the
// token never appears in a response body.
type SigninOutput struct {
	Token string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract the delivery layer depends on.
type AuthUsecase interface {
	// Signup registers a new passenger. The password is hashed before any
	// persistence call; an email collision surfaces as the EmailTaken error.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// Signin verifies the submitted credential and mints a session token.
	// A missing account and a wrong password are indistinguishable to the
	// caller.
	Signin(ctx context.Context, input *SigninInput) (*SigninOutput, error)
}
