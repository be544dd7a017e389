package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// onConflictDoNothing skips child rows that already exist
func onConflictDoNothing() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}

// isDuplicateKey reports whether the error is a unique constraint violation.
// GORM's TranslateError covers the drivers we use; the string checks catch
// raw SQL paths that bypass translation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// translateError maps storage errors onto the domain error taxonomy
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if isDuplicateKey(err) {
		return shared.NewDomainError("ALREADY_EXISTS", "A record with the same unique value already exists")
	}
	return err
}
