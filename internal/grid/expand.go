package grid

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/pkg/logger"
)

// ExpandState tracks which category rows are expanded. Absent keys mean
// collapsed; the state is persisted per (user, year, month).
type ExpandState map[string]bool

// IsExpanded reports whether a row is expanded. Collapsed is the default.
func (s ExpandState) IsExpanded(rowID string) bool {
	return s != nil && s[rowID]
}

// ExpandStore is the durable key-value capability backing expand state.
// Implementations live in infra (Redis) and memory (tests, no-Redis runs).
type ExpandStore interface {
	// Get returns the stored state for (user, year, month); an absent key
	// yields an empty state and no error.
	Get(ctx context.Context, userID uuid.UUID, year int, month time.Month) (ExpandState, error)

	// Set replaces the stored state. Must be idempotent.
	Set(ctx context.Context, userID uuid.UUID, year int, month time.Month, state ExpandState) error
}

// ExpandService wraps an ExpandStore with the grid's failure policy:
// expand state is a UX convenience, so store failures are logged at warn
// and swallowed, and the caller always gets a usable state back.
type ExpandService struct {
	store ExpandStore
	log   *logger.Logger
}

// NewExpandService creates a new expand state service.
func NewExpandService(store ExpandStore, log *logger.Logger) *ExpandService {
	return &ExpandService{
		store: store,
		log:   log.WithField("component", "expand_state"),
	}
}

// Get loads the expand state for a month. Failures yield an empty
// (all-collapsed) state.
func (s *ExpandService) Get(ctx context.Context, userID uuid.UUID, year int, month time.Month) ExpandState {
	state, err := s.store.Get(ctx, userID, year, month)
	if err != nil {
		s.log.Warn("failed to load expand state, using collapsed default",
			"user_id", userID, "year", year, "month", int(month), "error", err)
		return ExpandState{}
	}
	if state == nil {
		state = ExpandState{}
	}
	return state
}

// Set persists the expand state for a month. Failures are swallowed; the
// in-memory state keeps working for the session.
func (s *ExpandService) Set(ctx context.Context, userID uuid.UUID, year int, month time.Month, state ExpandState) {
	if err := s.store.Set(ctx, userID, year, month, state); err != nil {
		s.log.Warn("failed to persist expand state",
			"user_id", userID, "year", year, "month", int(month), "error", err)
	}
}

// Toggle flips one row and returns the resulting state.
func (s *ExpandService) Toggle(ctx context.Context, userID uuid.UUID, year int, month time.Month, rowID string) ExpandState {
	state := s.Get(ctx, userID, year, month)
	if state.IsExpanded(rowID) {
		delete(state, rowID)
	} else {
		state[rowID] = true
	}
	s.Set(ctx, userID, year, month, state)
	return state
}

// ExpandAll marks every expandable category row expanded.
func (s *ExpandService) ExpandAll(ctx context.Context, userID uuid.UUID, year int, month time.Month, rows []CategoryRow) ExpandState {
	state := make(ExpandState, len(rows))
	for i := range rows {
		if rows[i].CanExpand() {
			state[rows[i].ID] = true
		}
	}
	s.Set(ctx, userID, year, month, state)
	return state
}

// CollapseAll resets the state to empty; collapsed is the implicit default
// for absent keys.
func (s *ExpandService) CollapseAll(ctx context.Context, userID uuid.UUID, year int, month time.Month) ExpandState {
	state := ExpandState{}
	s.Set(ctx, userID, year, month, state)
	return state
}
