package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/grid"
	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/platform/transaction"
	apperrors "github.com/lunargrid/lunargrid/internal/shared/errors"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi/middleware"
	"github.com/lunargrid/lunargrid/pkg/money"
)

// GridServiceInterface defines the grid operations needed by GridHandler.
type GridServiceInterface interface {
	Month(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*grid.MonthView, error)
	EditCell(ctx context.Context, userID uuid.UUID, year int, month time.Month, edit grid.CellEdit) (*transaction.Transaction, error)
	ClearCell(ctx context.Context, userID uuid.UUID, year int, month time.Month, category, subcategory string, day int) (bool, error)
	SetExpandState(ctx context.Context, userID uuid.UUID, year int, month time.Month, state grid.ExpandState)
	ToggleRow(ctx context.Context, userID uuid.UUID, year int, month time.Month, rowID string) grid.ExpandState
	ExpandAll(ctx context.Context, userID uuid.UUID, year int, month time.Month) (grid.ExpandState, error)
	CollapseAll(ctx context.Context, userID uuid.UUID, year int, month time.Month) grid.ExpandState
	Orphans(ctx context.Context, userID uuid.UUID, year int, month time.Month) (grid.OrphanReport, error)
	CleanOrphans(ctx context.Context, userID uuid.UUID, year int, month time.Month) (int, error)
}

// GridHandler handles monthly grid HTTP requests
type GridHandler struct {
	service GridServiceInterface
}

// NewGridHandler creates a new grid handler
func NewGridHandler(service GridServiceInterface) *GridHandler {
	return &GridHandler{service: service}
}

// CellEditRequest represents the cell edit request body
type CellEditRequest struct {
	Amount      string `json:"amount"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// ExpandStateResponse wraps an expand state payload
type ExpandStateResponse struct {
	ExpandState grid.ExpandState `json:"expand_state"`
}

func (h *GridHandler) monthParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, time.Month, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, 0, 0, false
	}

	year, month, err := parseYearMonthPath(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, 0, 0, false
	}

	return userID, year, month, true
}

func respondGridError(w http.ResponseWriter, err error) {
	var taxErr *grid.TaxonomyError
	if errors.As(err, &taxErr) {
		respondAppError(w, apperrors.InvalidTaxonomy(taxErr.Error(), err))
		return
	}

	var rangeErr *grid.ErrDayOutOfRange
	if errors.As(err, &rangeErr) {
		respondAppError(w, apperrors.BadRequest(rangeErr.Error()))
		return
	}

	if errors.Is(err, transaction.ErrTransactionNotFound) {
		respondAppError(w, apperrors.NotFound("transaction"))
		return
	}

	respondAppError(w, apperrors.Internal("failed to build grid", err))
}

// GetMonth handles GET /grid/{year}/{month}
func (h *GridHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	view, err := h.service.Month(r.Context(), userID, year, month)
	if err != nil {
		respondGridError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// SetExpandState handles PUT /grid/{year}/{month}/expanded
func (h *GridHandler) SetExpandState(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	var state grid.ExpandState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.service.SetExpandState(r.Context(), userID, year, month, state)
	respondJSON(w, http.StatusOK, ExpandStateResponse{ExpandState: state})
}

// ToggleRow handles POST /grid/{year}/{month}/rows/{rowID}/toggle
func (h *GridHandler) ToggleRow(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	rowID := chi.URLParam(r, "rowID")
	if rowID == "" {
		respondError(w, http.StatusBadRequest, "row id is required")
		return
	}

	state := h.service.ToggleRow(r.Context(), userID, year, month, rowID)
	respondJSON(w, http.StatusOK, ExpandStateResponse{ExpandState: state})
}

// ExpandAll handles POST /grid/{year}/{month}/expand-all
func (h *GridHandler) ExpandAll(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	state, err := h.service.ExpandAll(r.Context(), userID, year, month)
	if err != nil {
		respondGridError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ExpandStateResponse{ExpandState: state})
}

// CollapseAll handles POST /grid/{year}/{month}/collapse-all
func (h *GridHandler) CollapseAll(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	state := h.service.CollapseAll(r.Context(), userID, year, month)
	respondJSON(w, http.StatusOK, ExpandStateResponse{ExpandState: state})
}

// EditCell handles PUT /grid/{year}/{month}/cells/{category}/{subcategory}/{day}
func (h *GridHandler) EditCell(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid day")
		return
	}

	var req CellEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	tx, err := h.service.EditCell(r.Context(), userID, year, month, grid.CellEdit{
		Category:    chi.URLParam(r, "category"),
		Subcategory: chi.URLParam(r, "subcategory"),
		Day:         day,
		Amount:      amount,
		Type:        taxonomy.TransactionType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		respondGridError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tx)
}

// ClearCell handles DELETE /grid/{year}/{month}/cells/{category}/{subcategory}/{day}
func (h *GridHandler) ClearCell(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid day")
		return
	}

	deleted, err := h.service.ClearCell(r.Context(), userID, year, month,
		chi.URLParam(r, "category"), chi.URLParam(r, "subcategory"), day)
	if err != nil {
		respondGridError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// GetOrphans handles GET /grid/{year}/{month}/orphans
func (h *GridHandler) GetOrphans(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	report, err := h.service.Orphans(r.Context(), userID, year, month)
	if err != nil {
		respondGridError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// CleanOrphans handles DELETE /grid/{year}/{month}/orphans
func (h *GridHandler) CleanOrphans(w http.ResponseWriter, r *http.Request) {
	userID, year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.CleanOrphans(r.Context(), userID, year, month)
	if err != nil {
		respondGridError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
