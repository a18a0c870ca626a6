package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loanledger/internal/domain/entry"
	"loanledger/internal/event"
	"loanledger/internal/pkg/apperrors"
)

// ExpiryReportJob periodically recomputes the expiring-loan report and
// publishes one notification per loan past its payment validity.
type ExpiryReportJob struct {
	entryService entry.EntryService
	publisher    event.Publisher
	timeout      time.Duration
	logger       *slog.Logger
}

func NewExpiryReportJob(
	entrySvc entry.EntryService,
	publisher event.Publisher,
	timeout time.Duration,
	logger *slog.Logger,
) *ExpiryReportJob {
	if entrySvc == nil || publisher == nil || logger == nil {
		panic("ExpiryReportJob dependencies cannot be nil")
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &ExpiryReportJob{
		entryService: entrySvc,
		publisher:    publisher,
		timeout:      timeout,
		logger:       logger.With("job", "ExpiryReport"),
	}
}

func (j *ExpiryReportJob) Run(ctx context.Context) error {
	startTime := time.Now()
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	j.logger.InfoContext(ctx, "Starting expiring-loan report job.")

	expiring, err := j.entryService.ExpiringWithinOneMonth(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			j.logger.InfoContext(ctx, "No loans past their payment validity, nothing to publish.",
				slog.Duration("duration", time.Since(startTime)))
			return nil
		}
		j.logger.ErrorContext(ctx, "Failed to compute expiring-loan report, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, expiring-loan report failed: %w", err)
	}

	var publishErrors int
	for _, row := range expiring {
		evt := event.LoanExpiringEvent{
			Timestamp:   time.Now(),
			LoanNumber:  row.LoanNumber,
			CustomerID:  row.Loan.CustomerID,
			MaxValidity: row.MaxValidity,
		}
		if pubErr := j.publisher.PublishLoanExpiring(ctx, evt); pubErr != nil {
			j.logger.ErrorContext(ctx, "Failed to publish loan expiring event",
				slog.Int64("loanNumber", row.LoanNumber), slog.Any("error", pubErr))
			publishErrors++
		}
	}

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("loans_expiring", len(expiring)),
		slog.Int("publish_errors", publishErrors),
	)
	if publishErrors > 0 {
		summaryLog.WarnContext(ctx, "Expiring-loan report job finished with publish errors.")
		return fmt.Errorf("job completed with %d publish errors", publishErrors)
	}
	summaryLog.InfoContext(ctx, "Expiring-loan report job finished successfully.")
	return nil
}
