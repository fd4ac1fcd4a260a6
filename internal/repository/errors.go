package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInvoiceNotFound is returned when no invoice matches the given id
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrCustomerNotFound is returned when an invoice references an unknown customer
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrUserNotFound is returned when no user matches the given email or id
	ErrUserNotFound = errors.New("user not found")
)

// PostgreSQL error codes the repositories translate
const (
	pgForeignKeyViolation       = "23503"
	pgInvalidTextRepresentation = "22P02"
)

// PersistenceError reports that the store rejected a statement or could not
// be reached. Op names the statement that failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err carries a PersistenceError
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// newPersistenceError wraps a driver error, tagging foreign key violations
// so callers can match ErrCustomerNotFound with errors.Is.
func newPersistenceError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		err = fmt.Errorf("%w: %w", ErrCustomerNotFound, err)
	}
	return &PersistenceError{Op: op, Err: err}
}

// isInvalidText reports whether the store rejected a malformed literal such as a bad uuid
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}
