package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate reports a unique-index violation on insert.
var ErrDuplicate = errors.New("duplicate key")

// isUniqueViolation accepts both GORM's translated error and the raw Postgres code,
// so it works whether or not TranslateError is enabled on the session.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
