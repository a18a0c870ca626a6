package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error

	FindByNumber(ctx context.Context, loanNumber int64) (*Loan, error)

	FindAll(ctx context.Context) ([]*Loan, error)

	FindByCustomerID(ctx context.Context, customerID int64) ([]*Loan, error)

	Update(ctx context.Context, l *Loan) error

	Delete(ctx context.Context, loanNumber int64) error
}
