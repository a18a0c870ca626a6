package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"loanledger/internal/domain/user"
	"loanledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db DBPool, logger *slog.Logger) *UserRepository {
	if db == nil {
		panic("DBPool cannot be nil for UserRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewUserRepository, using default stderr handler")
	}
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "UserRepository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return fmt.Errorf("%w: user cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new user", slog.String("username", u.Username))

	query := `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		u.Username,
		u.PasswordHash,
	).Scan(&u.ID)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert user due to unique constraint violation", slog.String("username", u.Username))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert user: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "User inserted successfully", slog.Int64("userID", u.ID))
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.logger.InfoContext(ctx, "Attempting to find user by username")

	query := `
        SELECT id, username, password_hash
        FROM users
        WHERE username = $1`

	var u user.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "User not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan user by username", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get user by username: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "User found successfully")
	return &u, nil
}

func (r *UserRepository) FindByCredentials(ctx context.Context, username, passwordHash string) (*user.User, error) {
	r.logger.InfoContext(ctx, "Attempting to find user by credential pair")

	query := `
        SELECT id, username, password_hash
        FROM users
        WHERE username = $1 AND password_hash = $2`

	var u user.User
	err := r.db.QueryRow(ctx, query, username, passwordHash).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "No user matched the credential pair")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan user by credentials", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get user by credentials: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "User matched credential pair", slog.Int64("userID", u.ID))
	return &u, nil
}
