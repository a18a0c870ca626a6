package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"loanledger/internal/pkg/apperrors"
	"loanledger/internal/pkg/hash"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*User, error)

	// Login is a pure credential check. No session state is kept; every
	// request that wants proof of identity goes through it again.
	Login(ctx context.Context, username, password string) (*User, error)
}

var _ AuthService = (*authService)(nil)

type authService struct {
	repo   Repository
	logger *slog.Logger
}

func NewAuthService(repo Repository, logger *slog.Logger) AuthService {
	if repo == nil {
		panic("user repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAuthService, using default stderr handler")
	}
	return &authService{
		repo:   repo,
		logger: logger.With(slog.String("component", "authService")),
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (*User, error) {
	logCtx := s.logger.With(slog.String("username", username))
	logCtx.InfoContext(ctx, "Attempting to register user")

	username = strings.TrimSpace(username)
	if username == "" {
		logCtx.WarnContext(ctx, "Validation failed: username is empty")
		return nil, apperrors.NewValidationError("username", "cannot be empty")
	}
	if strings.TrimSpace(password) == "" {
		logCtx.WarnContext(ctx, "Validation failed: password is empty")
		return nil, apperrors.NewValidationError("password", "cannot be empty")
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logCtx.ErrorContext(ctx, "Repository error checking for existing username", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check username %q: %w", username, err)
	}
	if existing != nil {
		logCtx.WarnContext(ctx, "Registration rejected: username already exists")
		return nil, fmt.Errorf("%w: username %q is already registered", apperrors.ErrAlreadyExists, username)
	}

	u := &User{
		Username:     username,
		PasswordHash: hash.Password(password),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Registration rejected: username created concurrently")
			return nil, fmt.Errorf("%w: username %q is already registered", apperrors.ErrAlreadyExists, username)
		}
		logCtx.ErrorContext(ctx, "Repository failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to register user %q: %w", username, err)
	}

	logCtx.InfoContext(ctx, "User registered successfully", slog.Int64("userID", u.ID))
	return u, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*User, error) {
	logCtx := s.logger.With(slog.String("username", username))
	logCtx.InfoContext(ctx, "Attempting login")

	username = strings.TrimSpace(username)
	if username == "" {
		logCtx.WarnContext(ctx, "Validation failed: username is empty")
		return nil, apperrors.NewValidationError("username", "cannot be empty")
	}
	if strings.TrimSpace(password) == "" {
		logCtx.WarnContext(ctx, "Validation failed: password is empty")
		return nil, apperrors.NewValidationError("password", "cannot be empty")
	}

	u, err := s.repo.FindByCredentials(ctx, username, hash.Password(password))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Login rejected: credential pair did not match")
			return nil, apperrors.ErrAuthentication
		}
		logCtx.ErrorContext(ctx, "Repository error during credential lookup", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify credentials for %q: %w", username, err)
	}

	logCtx.InfoContext(ctx, "Login succeeded", slog.Int64("userID", u.ID))
	return u, nil
}
