// Package model holds the GORM persistence models and keeps them separate
// from the pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// PassengerModel mirrors the 'passengers' table. PostgreSQL generates UUIDs
// via gen_random_uuid().
type PassengerModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	PhoneNumber  string    `gorm:"type:varchar(32)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (PassengerModel) TableName() string {
	return "passengers"
}
