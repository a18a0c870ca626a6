package customer

import "context"

type Repository interface {
	Create(ctx context.Context, cust *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	Update(ctx context.Context, cust *Customer) error

	Delete(ctx context.Context, customerID int64) error
}
