package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"loanledger/internal/domain/loan"
	"loanledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	if db == nil {
		panic("DBPool cannot be nil for LoanRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLoanRepository, using default stderr handler")
	}
	return &LoanRepository{
		db:     db,
		logger: logger.With("component", "LoanRepository"),
	}
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	if l == nil {
		return fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new loan", slog.Int64("loanNumber", l.LoanNumber))

	query := `
        INSERT INTO loans (loan_number, customer_id, loan_type, amount, interest, issue_date, document, advance_pay, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		l.LoanNumber,
		l.CustomerID,
		l.LoanType,
		l.Amount,
		l.Interest,
		l.IssueDate,
		l.Document,
		l.AdvancePay,
		l.Status,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert loan due to unique constraint violation", slog.Int64("loanNumber", l.LoanNumber))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert loan", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert loan: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Loan inserted successfully", slog.Int64("loanNumber", l.LoanNumber))
	return nil
}

func (r *LoanRepository) FindByNumber(ctx context.Context, loanNumber int64) (*loan.Loan, error) {
	r.logger.InfoContext(ctx, "Attempting to find loan by number")

	query := `
        SELECT loan_number, customer_id, loan_type, amount, interest, issue_date, document, advance_pay, status
        FROM loans
        WHERE loan_number = $1`

	var l loan.Loan
	err := r.db.QueryRow(ctx, query, loanNumber).Scan(
		&l.LoanNumber,
		&l.CustomerID,
		&l.LoanType,
		&l.Amount,
		&l.Interest,
		&l.IssueDate,
		&l.Document,
		&l.AdvancePay,
		&l.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan loan by number", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get loan by number: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Loan found successfully")
	return &l, nil
}

func (r *LoanRepository) scanLoans(ctx context.Context, rows pgx.Rows) ([]*loan.Loan, error) {
	defer rows.Close()

	loans := make([]*loan.Loan, 0)
	for rows.Next() {
		var l loan.Loan
		err := rows.Scan(
			&l.LoanNumber,
			&l.CustomerID,
			&l.LoanType,
			&l.Amount,
			&l.Interest,
			&l.IssueDate,
			&l.Document,
			&l.AdvancePay,
			&l.Status,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan loan row: %w", apperrors.ErrDatabase, err)
		}
		loans = append(loans, &l)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating loan rows: %w", apperrors.ErrDatabase, err)
	}

	return loans, nil
}

func (r *LoanRepository) FindAll(ctx context.Context) ([]*loan.Loan, error) {
	r.logger.InfoContext(ctx, "Attempting to find all loans")

	query := `
        SELECT loan_number, customer_id, loan_type, amount, interest, issue_date, document, advance_pay, status
        FROM loans
        ORDER BY loan_number ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query loans: %w", apperrors.ErrDatabase, err)
	}

	loans, err := r.scanLoans(ctx, rows)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Finished finding loans", slog.Int("count", len(loans)))
	return loans, nil
}

func (r *LoanRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*loan.Loan, error) {
	r.logger.InfoContext(ctx, "Attempting to find loans by customer", slog.Int64("customerID", customerID))

	query := `
        SELECT loan_number, customer_id, loan_type, amount, interest, issue_date, document, advance_pay, status
        FROM loans
        WHERE customer_id = $1
        ORDER BY loan_number ASC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans by customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query loans by customer: %w", apperrors.ErrDatabase, err)
	}

	loans, err := r.scanLoans(ctx, rows)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Finished finding loans by customer", slog.Int("count", len(loans)))
	return loans, nil
}

func (r *LoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	if l == nil {
		return fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update loan", slog.Int64("loanNumber", l.LoanNumber))

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
        UPDATE loans
        SET customer_id = $1,
            loan_type = $2,
            amount = $3,
            interest = $4,
            issue_date = $5,
            document = $6,
            advance_pay = $7,
            status = $8
        WHERE loan_number = $9`

	cmdTag, err := tx.Exec(ctx, query,
		l.CustomerID,
		l.LoanType,
		l.Amount,
		l.Interest,
		l.IssueDate,
		l.Document,
		l.AdvancePay,
		l.Status,
		l.LoanNumber,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update loan: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, loan likely not found")
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit loan update", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit loan update: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Loan updated successfully")
	return nil
}

func (r *LoanRepository) Delete(ctx context.Context, loanNumber int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete loan")

	query := `DELETE FROM loans WHERE loan_number = $1`

	cmdTag, err := r.db.Exec(ctx, query, loanNumber)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete loan", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete loan: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, loan likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Loan deleted successfully")
	return nil
}
