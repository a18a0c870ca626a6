package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"loanledger/internal/domain/entry"
	"loanledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type EntryRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ entry.Repository = (*EntryRepository)(nil)

func NewEntryRepository(db DBPool, logger *slog.Logger) *EntryRepository {
	if db == nil {
		panic("DBPool cannot be nil for EntryRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewEntryRepository, using default stderr handler")
	}
	return &EntryRepository{
		db:     db,
		logger: logger.With("component", "EntryRepository"),
	}
}

func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	if e == nil {
		return fmt.Errorf("%w: entry cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new payment entry", slog.Int64("entryID", e.EntryID))

	query := `
        INSERT INTO entries (entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		e.EntryID,
		e.LoanNumber,
		e.CustomerID,
		e.PayDate,
		e.PayAmount,
		e.Validity,
		e.PayType,
		e.EntryType,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert entry due to unique constraint violation", slog.Int64("entryID", e.EntryID))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert entry", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert entry: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Entry inserted successfully", slog.Int64("entryID", e.EntryID))
	return nil
}

func (r *EntryRepository) FindByID(ctx context.Context, entryID int64) (*entry.Entry, error) {
	r.logger.InfoContext(ctx, "Attempting to find entry by ID")

	query := `
        SELECT entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type
        FROM entries
        WHERE entry_id = $1`

	var e entry.Entry
	err := r.db.QueryRow(ctx, query, entryID).Scan(
		&e.EntryID,
		&e.LoanNumber,
		&e.CustomerID,
		&e.PayDate,
		&e.PayAmount,
		&e.Validity,
		&e.PayType,
		&e.EntryType,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Entry not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan entry by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get entry by ID: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Entry found successfully")
	return &e, nil
}

func (r *EntryRepository) scanEntries(ctx context.Context, rows pgx.Rows) ([]*entry.Entry, error) {
	defer rows.Close()

	entries := make([]*entry.Entry, 0)
	for rows.Next() {
		var e entry.Entry
		err := rows.Scan(
			&e.EntryID,
			&e.LoanNumber,
			&e.CustomerID,
			&e.PayDate,
			&e.PayAmount,
			&e.Validity,
			&e.PayType,
			&e.EntryType,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan entry row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan entry row: %w", apperrors.ErrDatabase, err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating entry rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating entry rows: %w", apperrors.ErrDatabase, err)
	}

	return entries, nil
}

func (r *EntryRepository) FindAll(ctx context.Context) ([]*entry.Entry, error) {
	r.logger.InfoContext(ctx, "Attempting to find all entries")

	query := `
        SELECT entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type
        FROM entries
        ORDER BY entry_id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query entries", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query entries: %w", apperrors.ErrDatabase, err)
	}

	entries, err := r.scanEntries(ctx, rows)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Finished finding entries", slog.Int("count", len(entries)))
	return entries, nil
}

func (r *EntryRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*entry.Entry, error) {
	r.logger.InfoContext(ctx, "Attempting to find entries by customer", slog.Int64("customerID", customerID))

	query := `
        SELECT entry_id, loan_number, customer_id, pay_date, pay_amount, validity, pay_type, entry_type
        FROM entries
        WHERE customer_id = $1
        ORDER BY entry_id ASC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query entries by customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query entries by customer: %w", apperrors.ErrDatabase, err)
	}

	entries, err := r.scanEntries(ctx, rows)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Finished finding entries by customer", slog.Int("count", len(entries)))
	return entries, nil
}

func (r *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	if e == nil {
		return fmt.Errorf("%w: entry cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update entry", slog.Int64("entryID", e.EntryID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: %w", apperrors.ErrDatabase, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
		}
	}()

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

	cmdTag, err := tx.Exec(ctx, query,
		e.LoanNumber,
		e.CustomerID,
		e.PayDate,
		e.PayAmount,
		e.Validity,
		e.PayType,
		e.EntryType,
		e.EntryID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update entry", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update entry: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, entry likely not found")
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit entry update", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit entry update: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Entry updated successfully")
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, entryID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete entry")

	query := `DELETE FROM entries WHERE entry_id = $1`

	cmdTag, err := r.db.Exec(ctx, query, entryID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete entry", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete entry: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, entry likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Entry deleted successfully")
	return nil
}

// FindOpenLoanValidity aggregates the latest payment validity per loan and
// joins the loan and customer rows for loans still marked "Open". The join is
// on the stored loan_number and customer_id values; the schema carries no
// foreign keys, so entries referencing a missing loan simply drop out of the
// join.
func (r *EntryRepository) FindOpenLoanValidity(ctx context.Context) ([]*entry.ExpiringLoan, error) {
	r.logger.InfoContext(ctx, "Attempting to aggregate open loan validity")

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

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query open loan validity", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query open loan validity: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	report := make([]*entry.ExpiringLoan, 0)
	for rows.Next() {
		var row entry.ExpiringLoan
		err := rows.Scan(
			&row.LoanNumber,
			&row.MaxValidity,
			&row.Loan.Amount,
			&row.Loan.CustomerID,
			&row.Loan.Status,
			&row.Customer.FirstName,
			&row.Customer.LastName,
			&row.Customer.Address,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan open loan validity row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan open loan validity row: %w", apperrors.ErrDatabase, err)
		}
		row.Loan.LoanNumber = row.LoanNumber
		report = append(report, &row)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating open loan validity rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating open loan validity rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished aggregating open loan validity", slog.Int("count", len(report)))
	return report, nil
}
