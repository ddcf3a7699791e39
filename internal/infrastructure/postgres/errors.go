package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// pgError returns the postgres error code and constraint name, if err is a *pgconn.PgError.
func pgError(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

// validID reports whether id can match a uuid primary key. Callers treat
// anything else as a missing row instead of sending it to postgres, which
// would fail the cast with 22P02.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
