package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no row matches the given id
	ErrNotFound = errors.New("not found")
	// ErrProtected is returned when a delete is blocked by a referencing row
	ErrProtected = errors.New("row is referenced and cannot be deleted")
	// ErrDuplicate is returned when a unique constraint rejects an insert
	ErrDuplicate = errors.New("duplicate row")
)

// translateError maps low-level pgx errors onto the package sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return ErrProtected
		case "23505": // unique_violation
			return ErrDuplicate
		}
	}
	return err
}
