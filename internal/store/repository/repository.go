package repository

import (
	"database/sql"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// wrapWriteErr folds constraint violations into store.ErrConflict
func wrapWriteErr(op string, err error) error {
	if store.IsConstraintViolation(err) {
		return fmt.Errorf("%s: %w: %v", op, store.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOneRow turns a zero-row update or delete into store.ErrNotFound
func expectOneRow(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, store.ErrNotFound)
	}
	return nil
}
