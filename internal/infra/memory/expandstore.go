// Package memory provides in-process fallbacks for optional infrastructure.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/grid"
)

// ExpandStore keeps expand state in process memory. It backs deployments
// without Redis; state is lost on restart.
type ExpandStore struct {
	mu     sync.RWMutex
	states map[string]grid.ExpandState
}

// NewExpandStore creates a new in-memory expand state store.
func NewExpandStore() *ExpandStore {
	return &ExpandStore{states: make(map[string]grid.ExpandState)}
}

func key(userID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("%s:%d-%02d", userID, year, int(month))
}

// Get returns the stored state for a month; an absent key yields an empty
// state.
func (s *ExpandStore) Get(_ context.Context, userID uuid.UUID, year int, month time.Month) (grid.ExpandState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.states[key(userID, year, month)]
	if !ok {
		return grid.ExpandState{}, nil
	}

	state := make(grid.ExpandState, len(stored))
	for k, v := range stored {
		state[k] = v
	}
	return state, nil
}

// Set replaces the stored state for a month. An empty state removes the
// entry.
func (s *ExpandStore) Set(_ context.Context, userID uuid.UUID, year int, month time.Month, state grid.ExpandState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(userID, year, month)
	if len(state) == 0 {
		delete(s.states, k)
		return nil
	}

	stored := make(grid.ExpandState, len(state))
	for id, v := range state {
		stored[id] = v
	}
	s.states[k] = stored
	return nil
}
