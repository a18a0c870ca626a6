package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"loanledger/internal/event"
	"loanledger/internal/pkg/apperrors"
)

const entryNotFound = "Entry not found by repository"

type EntryService interface {
	CreateEntry(ctx context.Context, e *Entry) (*Entry, error)
	GetEntry(ctx context.Context, entryID int64) (*Entry, error)
	ListEntries(ctx context.Context) ([]*Entry, error)
	ListEntriesByCustomer(ctx context.Context, customerID int64) ([]*Entry, error)
	UpdateEntry(ctx context.Context, entryID int64, incoming *Entry) error
	DeleteEntry(ctx context.Context, entryID int64) error

	// ExpiringWithinOneMonth reports open loans whose latest payment
	// validity lies at least one whole calendar month in the past.
	ExpiringWithinOneMonth(ctx context.Context) ([]*ExpiringLoan, error)
}

var _ EntryService = (*entryService)(nil)

type entryService struct {
	repo   Repository
	pub    event.Publisher
	logger *slog.Logger
}

func NewEntryService(repo Repository, pub event.Publisher, logger *slog.Logger) EntryService {
	if repo == nil {
		panic("entry repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewEntryService, using default stderr handler")
	}
	if pub == nil {
		logger.Warn("Warning: No event publisher provided to NewEntryService, events will be dropped")
		pub = event.NewNoopPublisher()
	}
	return &entryService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "entryService")),
	}
}

func newEntryEventPayload(e *Entry) event.EntryEventPayload {
	if e == nil {
		return event.EntryEventPayload{}
	}
	return event.EntryEventPayload{
		EntryID:    e.EntryID,
		LoanNumber: e.LoanNumber,
		CustomerID: e.CustomerID,
		PayDate:    e.PayDate,
		PayAmount:  e.PayAmount,
		Validity:   e.Validity,
		PayType:    e.PayType,
		EntryType:  e.EntryType,
	}
}

func (s *entryService) CreateEntry(ctx context.Context, e *Entry) (*Entry, error) {
	s.logger.InfoContext(ctx, "Attempting to create entry")

	if e == nil {
		s.logger.WarnContext(ctx, "Validation failed: entry payload is nil")
		return nil, fmt.Errorf("%w: entry payload is required", apperrors.ErrInvalidArgument)
	}
	if e.EntryID <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: entryId must be positive")
		return nil, apperrors.NewValidationError("entryId", "must be a positive number")
	}

	e.Normalize()
	logCtx := s.logger.With(slog.Int64("entryID", e.EntryID), slog.Int64("loanNumber", e.LoanNumber))

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Create rejected: entry ID already in use")
			return nil, fmt.Errorf("%w: entry %d already exists", apperrors.ErrAlreadyExists, e.EntryID)
		}
		logCtx.ErrorContext(ctx, "Repository failed to create entry", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create entry %d: %w", e.EntryID, err)
	}

	recorded := event.EntryRecordedEvent{
		Timestamp: time.Now(),
		Payload:   newEntryEventPayload(e),
	}
	if pubErr := s.pub.PublishEntryRecorded(ctx, recorded); pubErr != nil {
		logCtx.ErrorContext(ctx, "Entry created, but failed to publish recorded event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Entry created successfully")
	return e, nil
}

func (s *entryService) GetEntry(ctx context.Context, entryID int64) (*Entry, error) {
	logCtx := s.logger.With(slog.Int64("entryID", entryID))
	logCtx.InfoContext(ctx, "Attempting to get entry by ID")

	e, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, entryNotFound)
			return nil, apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding entry", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get entry %d: %w", entryID, err)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved entry")
	return e, nil
}

func (s *entryService) ListEntries(ctx context.Context) ([]*Entry, error) {
	s.logger.InfoContext(ctx, "Attempting to list all entries")

	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing entries", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved entries", slog.Int("count", len(entries)))
	return entries, nil
}

func (s *entryService) ListEntriesByCustomer(ctx context.Context, customerID int64) ([]*Entry, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to list entries by customer")

	if customerID <= 0 {
		logCtx.WarnContext(ctx, "Validation failed: customerId must be positive")
		return nil, apperrors.NewValidationError("customerId", "must be a positive number")
	}

	entries, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error listing entries by customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list entries for customer %d: %w", customerID, err)
	}
	if len(entries) == 0 {
		logCtx.WarnContext(ctx, "No entries found for customer")
		return nil, fmt.Errorf("%w: no entries for customer %d", apperrors.ErrNotFound, customerID)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved entries for customer", slog.Int("count", len(entries)))
	return entries, nil
}

func (s *entryService) UpdateEntry(ctx context.Context, entryID int64, incoming *Entry) error {
	logCtx := s.logger.With(slog.Int64("entryID", entryID))
	logCtx.InfoContext(ctx, "Attempting to update entry")

	if incoming == nil {
		logCtx.WarnContext(ctx, "Validation failed: entry payload is nil")
		return fmt.Errorf("%w: entry payload is required", apperrors.ErrInvalidArgument)
	}
	if entryID != incoming.EntryID {
		logCtx.WarnContext(ctx, "Validation failed: path and body entry IDs differ",
			slog.Int64("bodyEntryID", incoming.EntryID))
		return apperrors.NewValidationError("entryId", "does not match the ID in the request path")
	}

	existing, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Entry not found by repository for update")
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding entry for update", slog.Any("error", err))
		return fmt.Errorf("cannot find entry %d to update: %w", entryID, err)
	}

	updated := ApplyUpdate(*existing, *incoming)

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.ErrorContext(ctx, "Entry disappeared before update completed")
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to save updated entry", slog.Any("error", err))
		return fmt.Errorf("failed to update entry %d: %w", entryID, err)
	}

	logCtx.InfoContext(ctx, "Entry updated successfully")
	return nil
}

func (s *entryService) DeleteEntry(ctx context.Context, entryID int64) error {
	logCtx := s.logger.With(slog.Int64("entryID", entryID))
	logCtx.InfoContext(ctx, "Attempting to delete entry")

	if err := s.repo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, entryNotFound)
			return apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to delete entry", slog.Any("error", err))
		return fmt.Errorf("failed to delete entry %d: %w", entryID, err)
	}

	logCtx.InfoContext(ctx, "Entry deleted successfully")
	return nil
}

func (s *entryService) ExpiringWithinOneMonth(ctx context.Context) ([]*ExpiringLoan, error) {
	s.logger.InfoContext(ctx, "Running expiring-loan report")

	rows, err := s.repo.FindOpenLoanValidity(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error running expiring-loan aggregation", slog.Any("error", err))
		return nil, fmt.Errorf("failed to aggregate open-loan validity: %w", err)
	}

	expiring := FilterExpiring(rows, time.Now())
	if len(expiring) == 0 {
		s.logger.WarnContext(ctx, "Expiring-loan report is empty", slog.Int("candidates", len(rows)))
		return nil, fmt.Errorf("%w: no loans are past their payment validity", apperrors.ErrNotFound)
	}

	s.logger.InfoContext(ctx, "Expiring-loan report complete",
		slog.Int("candidates", len(rows)), slog.Int("expiring", len(expiring)))
	return expiring, nil
}
