package entry

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error

	FindByID(ctx context.Context, entryID int64) (*Entry, error)

	FindAll(ctx context.Context) ([]*Entry, error)

	FindByCustomerID(ctx context.Context, customerID int64) ([]*Entry, error)

	Update(ctx context.Context, e *Entry) error

	Delete(ctx context.Context, entryID int64) error

	// FindOpenLoanValidity groups entries by loan number, takes the maximum
	// validity per group, and joins the loan (status "Open" only) and its
	// customer. The calendar-month cutoff is applied by the caller.
	FindOpenLoanValidity(ctx context.Context) ([]*ExpiringLoan, error)
}
