// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"rideauth/internal/domain/entity"
)

// ErrPassengerNotFound is a domain-specific error returned when no passenger
// record exists for the given lookup key.
var ErrPassengerNotFound = errors.New("passenger not found")

// PassengerRepository defines the standard operations for passenger
// persistence. The application layer depends on this interface, never on a
// concrete storage technology.
type PassengerRepository interface {
	// FindByEmail retrieves a single passenger by their email address.
	// Returns ErrPassengerNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (*entity.Passenger, error)

	// Create persists a new passenger entity. Email uniqueness is enforced
	// by the store; conflicts surface as a domain EmailTaken error.
	Create(ctx context.Context, passenger *entity.Passenger) error
}
