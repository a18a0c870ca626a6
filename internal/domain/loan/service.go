package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"loanledger/internal/pkg/apperrors"
)

const loanNotFound = "Loan not found by repository"

type LoanService interface {
	CreateLoan(ctx context.Context, l *Loan) (*Loan, error)
	GetLoan(ctx context.Context, loanNumber int64) (*Loan, error)
	ListLoans(ctx context.Context) ([]*Loan, error)
	ListLoansByCustomer(ctx context.Context, customerID int64) ([]*Loan, error)
	UpdateLoan(ctx context.Context, loanNumber int64, incoming *Loan) error
	DeleteLoan(ctx context.Context, loanNumber int64) error
}

var _ LoanService = (*loanService)(nil)

type loanService struct {
	repo   Repository
	logger *slog.Logger
}

func NewLoanService(repo Repository, logger *slog.Logger) LoanService {
	if repo == nil {
		panic("loan repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLoanService, using default stderr handler")
	}
	return &loanService{
		repo:   repo,
		logger: logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanService) CreateLoan(ctx context.Context, l *Loan) (*Loan, error) {
	s.logger.InfoContext(ctx, "Attempting to create loan")

	if l == nil {
		s.logger.WarnContext(ctx, "Validation failed: loan payload is nil")
		return nil, fmt.Errorf("%w: loan payload is required", apperrors.ErrInvalidArgument)
	}
	if l.LoanNumber <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: loanNumber must be positive")
		return nil, apperrors.NewValidationError("loanNumber", "must be a positive number")
	}

	l.Normalize()
	logCtx := s.logger.With(slog.Int64("loanNumber", l.LoanNumber))

	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Create rejected: loan number already in use")
			return nil, fmt.Errorf("%w: loan %d already exists", apperrors.ErrAlreadyExists, l.LoanNumber)
		}
		logCtx.ErrorContext(ctx, "Repository failed to create loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create loan %d: %w", l.LoanNumber, err)
	}

	logCtx.InfoContext(ctx, "Loan created successfully", slog.String("status", l.Status))
	return l, nil
}

func (s *loanService) GetLoan(ctx context.Context, loanNumber int64) (*Loan, error) {
	logCtx := s.logger.With(slog.Int64("loanNumber", loanNumber))
	logCtx.InfoContext(ctx, "Attempting to get loan by number")

	l, err := s.repo.FindByNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, loanNotFound)
			return nil, apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get loan %d: %w", loanNumber, err)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved loan")
	return l, nil
}

func (s *loanService) ListLoans(ctx context.Context) ([]*Loan, error) {
	s.logger.InfoContext(ctx, "Attempting to list all loans")

	loans, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing loans", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved loans", slog.Int("count", len(loans)))
	return loans, nil
}

func (s *loanService) ListLoansByCustomer(ctx context.Context, customerID int64) ([]*Loan, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to list loans by customer")

	if customerID <= 0 {
		logCtx.WarnContext(ctx, "Validation failed: customerId must be positive")
		return nil, apperrors.NewValidationError("customerId", "must be a positive number")
	}

	loans, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error listing loans by customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans for customer %d: %w", customerID, err)
	}
	if len(loans) == 0 {
		logCtx.WarnContext(ctx, "No loans found for customer")
		return nil, fmt.Errorf("%w: no loans for customer %d", apperrors.ErrNotFound, customerID)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved loans for customer", slog.Int("count", len(loans)))
	return loans, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, loanNumber int64, incoming *Loan) error {
	logCtx := s.logger.With(slog.Int64("loanNumber", loanNumber))
	logCtx.InfoContext(ctx, "Attempting to update loan")

	if incoming == nil {
		logCtx.WarnContext(ctx, "Validation failed: loan payload is nil")
		return fmt.Errorf("%w: loan payload is required", apperrors.ErrInvalidArgument)
	}
	if loanNumber != incoming.LoanNumber {
		logCtx.WarnContext(ctx, "Validation failed: path and body loan numbers differ",
			slog.Int64("bodyLoanNumber", incoming.LoanNumber))
		return apperrors.NewValidationError("loanNumber", "does not match the number in the request path")
	}

	existing, err := s.repo.FindByNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Loan not found by repository for update")
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding loan for update", slog.Any("error", err))
		return fmt.Errorf("cannot find loan %d to update: %w", loanNumber, err)
	}

	updated := ApplyUpdate(*existing, *incoming)

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.ErrorContext(ctx, "Loan disappeared before update completed")
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to save updated loan", slog.Any("error", err))
		return fmt.Errorf("failed to update loan %d: %w", loanNumber, err)
	}

	logCtx.InfoContext(ctx, "Loan updated successfully")
	return nil
}

func (s *loanService) DeleteLoan(ctx context.Context, loanNumber int64) error {
	logCtx := s.logger.With(slog.Int64("loanNumber", loanNumber))
	logCtx.InfoContext(ctx, "Attempting to delete loan")

	if err := s.repo.Delete(ctx, loanNumber); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, loanNotFound)
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to delete loan", slog.Any("error", err))
		return fmt.Errorf("failed to delete loan %d: %w", loanNumber, err)
	}

	logCtx.InfoContext(ctx, "Loan deleted successfully")
	return nil
}
