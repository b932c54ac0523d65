// Package store is the gorm-backed system of record for identities, the
// course catalog and the entitlement ledger.
package store

import (
	"errors"
	"fmt"

	"course-gate/internal/domain/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate maps driver errors onto the taxonomy. Anything that is not a
// missing row is an unavailable store, never an empty answer.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrStoreUnavailable, err)
}

// checkID rejects ids that cannot name a row. PostgreSQL would fail the uuid
// cast instead of returning no rows, which would read as an outage.
func checkID(id, op string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q: %w", op, id, apperr.ErrNotFound)
	}
	return nil
}
