// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Passenger is the core identity record of the service. It couples the
// passenger's contact details with their stored credential.
type Passenger struct {
	ID           uuid.UUID // The unique identifier for the passenger.
	Name         string    // The passenger's display name.
	Email        string    // Unique login identifier, also used as the token subject.
	PasswordHash string    // Bcrypt hash of the password. Never the plaintext.
	PhoneNumber  string    // Contact phone number collected at signup.
	CreatedAt    time.Time // Timestamp of account creation.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
