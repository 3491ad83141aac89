// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file classifies raw driver errors so the service
// layer can translate them into its own taxonomy instead of leaking
// storage details to callers.
package repo

import (
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer.
var ErrNotFound = gorm.ErrRecordNotFound

// IsConstraintViolation reports whether err stems from a violated
// uniqueness or foreign-key constraint. GORM surfaces some of these as
// typed errors; the SQLite driver reports the rest in the message text.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "constraint violation")
}

// IsUnavailable reports whether err indicates the store itself is
// unreachable or unusable (closed handle, missing file, locked database),
// as opposed to a rejected statement.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrInvalidDB) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "unable to open database")
}
