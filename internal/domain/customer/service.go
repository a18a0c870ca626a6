package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"loanledger/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, incoming *Customer) error
	DeleteCustomer(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	logger *slog.Logger
}

func NewCustomerService(repo Repository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create customer")

	if cust == nil {
		s.logger.WarnContext(ctx, "Validation failed: customer payload is nil")
		return nil, fmt.Errorf("%w: customer payload is required", apperrors.ErrInvalidArgument)
	}
	if cust.CustomerID <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: customerId must be positive")
		return nil, apperrors.NewValidationError("customerId", "must be a positive number")
	}

	logCtx := s.logger.With(slog.Int64("customerID", cust.CustomerID))

	if err := s.repo.Create(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Create rejected: customer ID already in use")
			return nil, fmt.Errorf("%w: customer %d already exists", apperrors.ErrAlreadyExists, cust.CustomerID)
		}
		logCtx.ErrorContext(ctx, "Repository failed to create customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create customer %d: %w", cust.CustomerID, err)
	}

	logCtx.InfoContext(ctx, "Customer created successfully")
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to get customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved customer")
	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, incoming *Customer) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	if incoming == nil {
		logCtx.WarnContext(ctx, "Validation failed: customer payload is nil")
		return fmt.Errorf("%w: customer payload is required", apperrors.ErrInvalidArgument)
	}
	if customerID != incoming.CustomerID {
		logCtx.WarnContext(ctx, "Validation failed: path and body customer IDs differ",
			slog.Int64("bodyCustomerID", incoming.CustomerID))
		return apperrors.NewValidationError("customerId", "does not match the ID in the request path")
	}

	existing, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository for update")
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	updated := ApplyUpdate(*existing, *incoming)

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.ErrorContext(ctx, "Customer disappeared before update completed")
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Customer deleted successfully")
	return nil
}
