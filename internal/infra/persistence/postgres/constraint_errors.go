package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for PostgreSQL error classification.

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// The pgx driver reports unique_violation as SQLSTATE 23505 before GORM
	// translation kicks in.
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23505") ||
		strings.Contains(errMsg, "duplicate key")
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23502") ||
		strings.Contains(errMsg, "null value")
}
