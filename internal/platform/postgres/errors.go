package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/dailynote/internal/store"
)

// SQLSTATE codes the document store translates.
const (
	codeUniqueViolation   = "23505"
	codeCheckViolation    = "23514"
	codeNotNullViolation  = "23502"
	codeInvalidTextFormat = "22P02"
)

// uniqueValueIndex is the partial unique index that enforces AddUnique.
const uniqueValueIndex = "documents_unique_value_idx"

// MapError translates driver errors into store sentinels, keeping the
// driver error in the message. Errors with no store meaning are returned
// as they are.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrDocumentNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	var sentinel error
	detail := pgErr.ConstraintName
	switch pgErr.Code {
	case codeUniqueViolation:
		sentinel = store.ErrKeyExists
		if pgErr.ConstraintName == uniqueValueIndex {
			sentinel = store.ErrUniqueValueExists
		}
	case codeCheckViolation, codeInvalidTextFormat:
		sentinel = store.ErrInvalidEntity
	case codeNotNullViolation:
		sentinel = store.ErrInvalidEntity
		detail = pgErr.ColumnName
	default:
		return err
	}
	if detail == "" {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return fmt.Errorf("%w (%s): %v", sentinel, detail, err)
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return false
}

func rowsAffected(result sql.Result) (int64, error) {
	if result == nil {
		return 0, errors.New("no result returned")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}
