package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"loanledger/internal/api/handler/dto"
	"loanledger/internal/domain/entry"
	"loanledger/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type EntryHandler struct {
	service entry.EntryService
	logger  *slog.Logger
}

func NewEntryHandler(s entry.EntryService, l *slog.Logger) *EntryHandler {
	if s == nil {
		panic("entry service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &EntryHandler{
		service: s,
		logger:  l.With("component", "EntryHandler"),
	}
}

func getEntryIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "entryID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: entryID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid entryID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateEntry handles POST /entries.
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create entry request")

	var req dto.EntryRequest
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

	newEntry, err := req.ToEntry()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Request payload conversion failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateEntry(r.Context(), newEntry)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to create entry", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewEntryResponse(created)
	h.logger.InfoContext(r.Context(), "Entry created successfully", slog.Int64("entryID", resp.EntryID))
	w.Header().Set("Location", fmt.Sprintf("/entries/%d", resp.EntryID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetEntry handles GET /entries/{entryID}.
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := getEntryIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get entry ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	domainEntry, err := h.service.GetEntry(r.Context(), entryID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get entry", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Entry retrieved successfully")
	respondJSON(w, http.StatusOK, dto.NewEntryResponse(domainEntry))
}

// ListEntries handles GET /entries.
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list entries request")

	entries, err := h.service.ListEntries(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list entries", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.NewEntryResponse(e)
	}

	h.logger.InfoContext(r.Context(), "Entries listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// ListEntriesByCustomer handles GET /customers/{customerID}/entries. A
// customer with no entries yields 404 rather than an empty list.
func (h *EntryHandler) ListEntriesByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	entries, err := h.service.ListEntriesByCustomer(r.Context(), customerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to list entries by customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.NewEntryResponse(e)
	}

	h.logger.InfoContext(r.Context(), "Customer entries listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// UpdateEntry handles PUT /entries/{entryID}. Every field of the record is
// replaced with the request payload.
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := getEntryIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get entry ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.EntryRequest
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

	incoming, err := req.ToEntry()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Request payload conversion failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	err = h.service.UpdateEntry(r.Context(), entryID, incoming)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update entry", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Entry updated successfully")
	respondJSON(w, http.StatusNoContent, nil)
}

// DeleteEntry handles DELETE /entries/{entryID}.
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := getEntryIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get entry ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	err = h.service.DeleteEntry(r.Context(), entryID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete entry", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Entry deleted successfully")
	respondJSON(w, http.StatusNoContent, nil)
}

// GetExpiringLoans handles GET /entries/expiring. It reports open loans whose
// latest payment validity is at least one whole calendar month in the past,
// and returns 404 when no loan qualifies.
func (h *EntryHandler) GetExpiringLoans(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received expiring loans report request")

	rows, err := h.service.ExpiringWithinOneMonth(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.logger.InfoContext(r.Context(), "No expiring loans found")
			respondError(w, err)
			return
		}
		h.logger.ErrorContext(r.Context(), "Service failed to build expiring loans report", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: expiring loans report failed", apperrors.ErrInternalServer))
		return
	}

	resp := make([]dto.ExpiringLoanResponse, len(rows))
	for i, row := range rows {
		resp[i] = dto.NewExpiringLoanResponse(row)
	}

	h.logger.InfoContext(r.Context(), "Expiring loans report built successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}
