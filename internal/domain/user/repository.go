package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error

	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByCredentials matches both the username and the stored password
	// digest. A miss is indistinguishable from an unknown username.
	FindByCredentials(ctx context.Context, username, passwordHash string) (*User, error)
}
