package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrUniqueViolation = errors.New("unique constraint violation")
)

const pgUniqueViolation = "23505"

// translateErr maps driver errors onto the repository sentinels so the
// service layer never has to know about pgconn.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrUniqueViolation
	}
	return err
}
