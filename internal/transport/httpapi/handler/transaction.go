package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/platform/transaction"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi/middleware"
	"github.com/lunargrid/lunargrid/pkg/money"
)

// TransactionServiceInterface defines the transaction operations needed by
// TransactionHandler.
type TransactionServiceInterface interface {
	Create(ctx context.Context, tx *transaction.Transaction) (*transaction.Transaction, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error)
	Update(ctx context.Context, userID uuid.UUID, tx *transaction.Transaction) (*transaction.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListForMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]transaction.Transaction, error)
	ListForRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]transaction.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	service TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// TransactionRequest represents the transaction create/update request body
type TransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"` // non-negative decimal string
	Date        string `json:"date"`   // YYYY-MM-DD
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description,omitempty"`
	Recurring   bool   `json:"recurring"`
	Status      string `json:"status,omitempty"`
}

func (req *TransactionRequest) toTransaction(userID uuid.UUID) (*transaction.Transaction, error) {
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return nil, errors.New("invalid amount")
	}
	if amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("invalid date, expected YYYY-MM-DD")
	}

	return &transaction.Transaction{
		UserID:      userID,
		Type:        taxonomy.TransactionType(req.Type),
		Amount:      amount,
		Date:        date,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Recurring:   req.Recurring,
		Status:      transaction.Status(req.Status),
	}, nil
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := req.toTransaction(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), tx)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// GetTransaction handles GET /transactions/{id}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	tx, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get transaction")
		return
	}

	respondJSON(w, http.StatusOK, tx)
}

// ListTransactions handles GET /transactions?year=2025&month=5 and the
// explicit range form GET /transactions?from=2025-05-01&to=2025-07-01
// (to is exclusive).
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var txs []transaction.Transaction
	var err error
	if r.URL.Query().Get("from") != "" || r.URL.Query().Get("to") != "" {
		from, to, rangeErr := parseDateRangeQuery(r)
		if rangeErr != nil {
			respondError(w, http.StatusBadRequest, rangeErr.Error())
			return
		}
		txs, err = h.service.ListForRange(r.Context(), userID, from, to)
	} else {
		year, month, monthErr := parseYearMonthQuery(r)
		if monthErr != nil {
			respondError(w, http.StatusBadRequest, monthErr.Error())
			return
		}
		txs, err = h.service.ListForMonth(r.Context(), userID, year, month)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txs == nil {
		txs = []transaction.Transaction{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"total":        len(txs),
	})
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := req.toTransaction(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx.ID = id

	updated, err := h.service.Update(r.Context(), userID, tx)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
