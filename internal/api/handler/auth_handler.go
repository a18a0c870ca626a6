package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"loanledger/internal/api/handler/dto"
	"loanledger/internal/config"
	"loanledger/internal/domain/user"
	"loanledger/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	service user.AuthService
	authCfg config.AuthConfig
	logger  *slog.Logger
}

func NewAuthHandler(s user.AuthService, authCfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	if s == nil {
		panic("auth service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AuthHandler{
		service: s,
		authCfg: authCfg,
		logger:  l.With("component", "AuthHandler"),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received register request")

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	registered, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to register user", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User registered successfully", slog.String("username", registered.Username))
	respondJSON(w, http.StatusOK, dto.NewUserResponse(registered))
}

// Login handles POST /auth/login. The response carries a bearer token only
// when token issuance is enabled in the server configuration.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received login request")

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	loggedIn, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Login rejected", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.LoginResponse{Username: loggedIn.Username}
	if h.authCfg.Enabled && h.authCfg.JWTSecret != "" {
		token, err := h.issueToken(loggedIn.Username)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to sign bearer token", slog.Any("error", err))
			respondError(w, fmt.Errorf("%w: failed to issue token", apperrors.ErrInternalServer))
			return
		}
		resp.Token = token
	}

	h.logger.InfoContext(r.Context(), "User logged in successfully", slog.String("username", resp.Username))
	respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) issueToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.authCfg.JWTSecret))
}
