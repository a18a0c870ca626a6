package postgres

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"loanledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const pgxmockExpectationsNotMetMsg = "pgxmock expectations not met"

func TestTranslateDBErrorNoRows(t *testing.T) {
	err := translateDBError(pgx.ErrNoRows, logger)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTranslateDBErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "customers_pkey"}
	err := translateDBError(pgErr, logger)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "customers_pkey")
}

func TestTranslateDBErrorOtherPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
	err := translateDBError(pgErr, logger)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}

func TestTranslateDBErrorPassThrough(t *testing.T) {
	plain := errors.New("connection reset")
	err := translateDBError(plain, logger)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.ErrorIs(t, err, plain)
}
