package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"loanledger/internal/domain/entry"
	"loanledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var entryTest = &entry.Entry{
	EntryID:    9001,
	LoanNumber: 5001,
	CustomerID: 101,
	PayDate:    time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
	PayAmount:  625,
	Validity:   time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC),
	PayType:    entry.DefaultPayType,
	EntryType:  entry.DefaultEntryType,
}

func setupEntryRepo(t *testing.T) (context.Context, *EntryRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewEntryRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func entryRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"entry_id", "loan_number", "customer_id", "pay_date", "pay_amount", "validity", "pay_type", "entry_type"}).
		AddRow(entryTest.EntryID, entryTest.LoanNumber, entryTest.CustomerID, entryTest.PayDate, entryTest.PayAmount, entryTest.Validity, entryTest.PayType, entryTest.EntryType)
}

func TestCreateEntryWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        INSERT INTO entries (entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		entryTest.EntryID,
		entryTest.LoanNumber,
		entryTest.CustomerID,
		entryTest.PayDate,
		entryTest.PayAmount,
		entryTest.Validity,
		entryTest.PayType,
		entryTest.EntryType,
	).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(ctx, entryTest)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreateEntryWhenDuplicateID(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        INSERT INTO entries (entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		entryTest.EntryID,
		entryTest.LoanNumber,
		entryTest.CustomerID,
		entryTest.PayDate,
		entryTest.PayAmount,
		entryTest.Validity,
		entryTest.PayType,
		entryTest.EntryType,
	).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "entries_pkey"})

	err := repo.Create(ctx, entryTest)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindEntryByIDReturnOne(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        SELECT entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type
        FROM entries
        WHERE entry_id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(entryTest.EntryID).WillReturnRows(entryRows())

	result, err := repo.FindByID(ctx, entryTest.EntryID)
	assert.NoError(t, err)
	assert.Equal(t, entryTest.EntryID, result.EntryID)
	assert.Equal(t, entryTest.PayAmount, result.PayAmount)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindEntryByIDReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        SELECT entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type
        FROM entries
        WHERE entry_id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(entryTest.EntryID).WillReturnError(pgx.ErrNoRows)

	result, err := repo.FindByID(ctx, entryTest.EntryID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, result)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllThenGetAllEntries(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        SELECT entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type
        FROM entries
        ORDER BY entry_id ASC`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(entryRows())

	result, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(result))
	assert.Equal(t, entryTest.EntryID, result[0].EntryID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindEntriesByCustomerIDReturnMany(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        SELECT entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type
        FROM entries
        WHERE customer_id = $1
        ORDER BY entry_id ASC`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(entryTest.CustomerID).WillReturnRows(entryRows())

	result, err := repo.FindByCustomerID(ctx, entryTest.CustomerID)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(result))
	assert.Equal(t, entryTest.CustomerID, result[0].CustomerID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateEntryWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        UPDATE entries
        SET loan_number = $1,
            customer_id = $2,
            pay_date = $3,
            pay_amount = $4,
            validity = $5,
            pay_type = $6,
            entry_type = $7
        WHERE entry_id = $8`

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		entryTest.LoanNumber,
		entryTest.CustomerID,
		entryTest.PayDate,
		entryTest.PayAmount,
		entryTest.Validity,
		entryTest.PayType,
		entryTest.EntryType,
		entryTest.EntryID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	err := repo.Update(ctx, entryTest)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateEntryWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        UPDATE entries
        SET loan_number = $1,
            customer_id = $2,
            pay_date = $3,
            pay_amount = $4,
            validity = $5,
            pay_type = $6,
            entry_type = $7
        WHERE entry_id = $8`

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		entryTest.LoanNumber,
		entryTest.CustomerID,
		entryTest.PayDate,
		entryTest.PayAmount,
		entryTest.Validity,
		entryTest.PayType,
		entryTest.EntryType,
		entryTest.EntryID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectRollback()

	err := repo.Update(ctx, entryTest)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteEntryWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `DELETE FROM entries WHERE entry_id = $1`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(entryTest.EntryID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(ctx, entryTest.EntryID)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteEntryWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `DELETE FROM entries WHERE entry_id = $1`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(entryTest.EntryID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(ctx, entryTest.EntryID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindOpenLoanValidityReturnRows(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        SELECT e.loan_number, MAX(e.validity) AS max_validity,
               l.amount, l.customer_id, l.status,
               c.first_name, c.last_name, c.address
        FROM entries e
        JOIN loans l ON l.loan_number = e.loan_number
        JOIN customers c ON c.customer_id = l.customer_id
        WHERE l.status = 'Open'
        GROUP BY e.loan_number, l.amount, l.customer_id, l.status, c.first_name, c.last_name, c.address
        ORDER BY e.loan_number ASC`

	maxValidity := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(25000)

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(pgxmock.NewRows([]string{"loan_number", "max_validity", "amount", "customer_id", "status", "first_name", "last_name", "address"}).
			AddRow(int64(5001), maxValidity, amount, int64(101), "Open", "John", "Doe", "123 Main St"))

	result, err := repo.FindOpenLoanValidity(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(result))
	assert.Equal(t, int64(5001), result[0].LoanNumber)
	assert.Equal(t, int64(5001), result[0].Loan.LoanNumber)
	assert.Equal(t, maxValidity, result[0].MaxValidity)
	assert.Equal(t, "Open", result[0].Loan.Status)
	assert.Equal(t, "John", result[0].Customer.FirstName)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindOpenLoanValidityReturnEmpty(t *testing.T) {
	ctx, repo, mockPool := setupEntryRepo(t)
	defer mockPool.Close()

	query := `
        SELECT e.loan_number, MAX(e.validity) AS max_validity,
               l.amount, l.customer_id, l.status,
               c.first_name, c.last_name, c.address
        FROM entries e
        JOIN loans l ON l.loan_number = e.loan_number
        JOIN customers c ON c.customer_id = l.customer_id
        WHERE l.status = 'Open'
        GROUP BY e.loan_number, l.amount, l.customer_id, l.status, c.first_name, c.last_name, c.address
        ORDER BY e.loan_number ASC`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(pgxmock.NewRows([]string{"loan_number", "max_validity", "amount", "customer_id", "status", "first_name", "last_name", "address"}))

	result, err := repo.FindOpenLoanValidity(ctx)
	assert.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
