package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"loanledger/internal/domain/customer"
	"loanledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.Int64("customerID", cust.CustomerID))

	query := `
        INSERT INTO customers (customer_id, first_name, last_name, father_name, mother_name, mobile_no, address, type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		cust.CustomerID,
		cust.FirstName,
		cust.LastName,
		cust.FatherName,
		cust.MotherName,
		cust.MobileNo,
		cust.Address,
		cust.Type,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation", slog.Int64("customerID", cust.CustomerID))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by ID")

	query := `
        SELECT customer_id, first_name, last_name, father_name, mother_name, mobile_no, address, type
        FROM customers
        WHERE customer_id = $1`

	var cust customer.Customer
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&cust.CustomerID,
		&cust.FirstName,
		&cust.LastName,
		&cust.FatherName,
		&cust.MotherName,
		&cust.MobileNo,
		&cust.Address,
		&cust.Type,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer found successfully")
	return &cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find all customers")

	query := `
        SELECT customer_id, first_name, last_name, father_name, mother_name, mobile_no, address, type
        FROM customers
        ORDER BY customer_id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		err := rows.Scan(
			&cust.CustomerID,
			&cust.FirstName,
			&cust.LastName,
			&cust.FatherName,
			&cust.MotherName,
			&cust.MobileNo,
			&cust.Address,
			&cust.Type,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", cust.CustomerID))

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
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            father_name = $3,
            mother_name = $4,
            mobile_no = $5,
            address = $6,
            type = $7
        WHERE customer_id = $8`

	cmdTag, err := tx.Exec(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.FatherName,
		cust.MotherName,
		cust.MobileNo,
		cust.Address,
		cust.Type,
		cust.CustomerID,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit customer update", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit customer update: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete customer")

	query := `DELETE FROM customers WHERE customer_id = $1`

	cmdTag, err := r.db.Exec(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer deleted successfully")
	return nil
}
