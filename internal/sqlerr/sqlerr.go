// Package sqlerr classifies driver errors so that constraint violations the
// handlers did not pre-check surface as 409/404 instead of 500.
package sqlerr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Code is the constraint category of a database error.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
)

// PostgreSQL SQLSTATE values.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Classify maps err to a Code. It understands pgx, modernc sqlite and gorm's
// translated errors, then falls back to matching driver messages.
func Classify(err error) Code {
	if err == nil {
		return Other
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return UniqueViolation
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ForeignKeyViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return UniqueViolation
		case pgForeignKeyViolation:
			return ForeignKeyViolation
		case pgNotNullViolation:
			return NotNullViolation
		case pgCheckViolation:
			return CheckViolation
		}
		return Other
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return UniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ForeignKeyViolation
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return NotNullViolation
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return CheckViolation
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value violates unique constraint"):
		return UniqueViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return ForeignKeyViolation
	case strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "violates not-null constraint"):
		return NotNullViolation
	}
	return Other
}

func IsUniqueViolation(err error) bool {
	return Classify(err) == UniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return Classify(err) == ForeignKeyViolation
}
