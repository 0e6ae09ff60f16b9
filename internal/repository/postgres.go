// Package repository provides PostgreSQL implementations of the service
// repositories.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/atinyakov/FirmAdmin/internal/service"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// translate maps driver errors to service errors and wraps the rest with op.
func translate(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return service.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, service.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected reports service.ErrNotFound when res touched no row.
func affected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return service.ErrNotFound
	}
	return nil
}
