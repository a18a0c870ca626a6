package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"loanledger/internal/api/handler/dto"
	"loanledger/internal/domain/loan"
	"loanledger/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	if s == nil {
		panic("loan service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

func getLoanNumberFromURL(r *http.Request) (int64, error) {
	numStr := chi.URLParam(r, "loanNumber")
	if numStr == "" {
		return 0, fmt.Errorf("%w: loanNumber not found in URL path", apperrors.ErrInvalidArgument)
	}
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil || num <= 0 {
		return 0, fmt.Errorf("%w: invalid loanNumber format in URL path: %s", apperrors.ErrInvalidArgument, numStr)
	}
	return num, nil
}

// CreateLoan handles POST /loans.
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create loan request")

	var req dto.LoanRequest
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

	newLoan, err := req.ToLoan()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Request payload conversion failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateLoan(r.Context(), newLoan)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to create loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(created)
	h.logger.InfoContext(r.Context(), "Loan created successfully", slog.Int64("loanNumber", resp.LoanNumber))
	w.Header().Set("Location", fmt.Sprintf("/loans/%d", resp.LoanNumber))
	respondJSON(w, http.StatusCreated, resp)
}

// GetLoan handles GET /loans/{loanNumber}.
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanNumber, err := getLoanNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get loan number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	domainLoan, err := h.service.GetLoan(r.Context(), loanNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan retrieved successfully")
	respondJSON(w, http.StatusOK, dto.NewLoanResponse(domainLoan))
}

// ListLoans handles GET /loans.
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list loans request")

	loans, err := h.service.ListLoans(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list loans", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = dto.NewLoanResponse(l)
	}

	h.logger.InfoContext(r.Context(), "Loans listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// ListLoansByCustomer handles GET /customers/{customerID}/loans. A customer
// with no loans yields 404 rather than an empty list.
func (h *LoanHandler) ListLoansByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	loans, err := h.service.ListLoansByCustomer(r.Context(), customerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to list loans by customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = dto.NewLoanResponse(l)
	}

	h.logger.InfoContext(r.Context(), "Customer loans listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// UpdateLoan handles PUT /loans/{loanNumber}. Every field of the record is
// replaced with the request payload.
func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	loanNumber, err := getLoanNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get loan number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.LoanRequest
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

	incoming, err := req.ToLoan()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Request payload conversion failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	err = h.service.UpdateLoan(r.Context(), loanNumber, incoming)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan updated successfully")
	respondJSON(w, http.StatusNoContent, nil)
}

// DeleteLoan handles DELETE /loans/{loanNumber}.
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	loanNumber, err := getLoanNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get loan number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	err = h.service.DeleteLoan(r.Context(), loanNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan deleted successfully")
	respondJSON(w, http.StatusNoContent, nil)
}
