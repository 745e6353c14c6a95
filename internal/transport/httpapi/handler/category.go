package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi/middleware"
)

// TaxonomyServiceInterface defines the taxonomy operations needed by
// CategoryHandler.
type TaxonomyServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]taxonomy.Entry, error)
	Create(ctx context.Context, userID uuid.UUID, name string, txType taxonomy.TransactionType, subcategories []string) (*taxonomy.Entry, error)
	Update(ctx context.Context, userID, id uuid.UUID, name string, txType taxonomy.TransactionType, subcategories []string) (*taxonomy.Entry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CategoryHandler handles category configuration HTTP requests
type CategoryHandler struct {
	service TaxonomyServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service TaxonomyServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryRequest represents the category create/update request body
type CategoryRequest struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Subcategories []string `json:"subcategories"`
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if entries == nil {
		entries = []taxonomy.Entry{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": entries,
		"total":      len(entries),
	})
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Create(r.Context(), userID, req.Name, taxonomy.TransactionType(req.Type), req.Subcategories)
	if err != nil {
		if errors.Is(err, taxonomy.ErrCategoryAlreadyExists) {
			respondError(w, http.StatusConflict, "category with this name already exists")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// UpdateCategory handles PUT /categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Update(r.Context(), userID, id, req.Name, taxonomy.TransactionType(req.Type), req.Subcategories)
	if err != nil {
		switch {
		case errors.Is(err, taxonomy.ErrCategoryNotFound):
			respondError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, taxonomy.ErrCategoryAlreadyExists):
			respondError(w, http.StatusConflict, "category with this name already exists")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// DeleteCategory handles DELETE /categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, taxonomy.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
