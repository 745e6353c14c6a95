package grid_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargrid/lunargrid/internal/grid"
	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/pkg/logger"
)

// mapStore is a minimal in-memory ExpandStore for unit tests.
type mapStore struct {
	data map[string]grid.ExpandState
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]grid.ExpandState)}
}

func storeKey(userID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("%s:%d-%02d", userID, year, int(month))
}

func (s *mapStore) Get(_ context.Context, userID uuid.UUID, year int, month time.Month) (grid.ExpandState, error) {
	state, ok := s.data[storeKey(userID, year, month)]
	if !ok {
		return grid.ExpandState{}, nil
	}
	copied := make(grid.ExpandState, len(state))
	for k, v := range state {
		copied[k] = v
	}
	return copied, nil
}

func (s *mapStore) Set(_ context.Context, userID uuid.UUID, year int, month time.Month, state grid.ExpandState) error {
	copied := make(grid.ExpandState, len(state))
	for k, v := range state {
		copied[k] = v
	}
	s.data[storeKey(userID, year, month)] = copied
	return nil
}

// failingStore always errors, standing in for an unavailable KV store.
type failingStore struct{}

func (failingStore) Get(context.Context, uuid.UUID, int, time.Month) (grid.ExpandState, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) Set(context.Context, uuid.UUID, int, time.Month, grid.ExpandState) error {
	return errors.New("quota exceeded")
}

func quietLogger() *logger.Logger {
	return logger.New("test", io.Discard)
}

func TestExpandService_PersistsPerMonth(t *testing.T) {
	svc := grid.NewExpandService(newMapStore(), quietLogger())
	ctx := context.Background()
	userID := uuid.New()

	state := svc.Toggle(ctx, userID, 2025, time.May, "Expenses")
	assert.True(t, state.IsExpanded("Expenses"))

	// Re-reading the same month returns the persisted state
	assert.Equal(t, grid.ExpandState{"Expenses": true}, svc.Get(ctx, userID, 2025, time.May))

	// A different month starts empty
	assert.Empty(t, svc.Get(ctx, userID, 2025, time.June))
}

func TestExpandService_ToggleTwiceCollapses(t *testing.T) {
	svc := grid.NewExpandService(newMapStore(), quietLogger())
	ctx := context.Background()
	userID := uuid.New()

	svc.Toggle(ctx, userID, 2025, time.May, "Expenses")
	state := svc.Toggle(ctx, userID, 2025, time.May, "Expenses")

	assert.False(t, state.IsExpanded("Expenses"))
	// Collapsed rows are removed, not stored as false
	_, present := state["Expenses"]
	assert.False(t, present)
}

func TestExpandService_ExpandAllAndCollapseAll(t *testing.T) {
	entries := []taxonomy.Entry{
		{Name: "A", Type: taxonomy.TypeExpense, Subcategories: []string{"A1"}},
		{Name: "B", Type: taxonomy.TypeExpense, Subcategories: []string{"B1"}},
		{Name: "Leaf", Type: taxonomy.TypeExpense}, // nothing to expand
	}
	res, err := grid.Aggregate(nil, 2025, time.May, entries)
	require.NoError(t, err)

	svc := grid.NewExpandService(newMapStore(), quietLogger())
	ctx := context.Background()
	userID := uuid.New()

	state := svc.ExpandAll(ctx, userID, 2025, time.May, res.Rows)
	assert.Equal(t, grid.ExpandState{"A": true, "B": true}, state)

	state = svc.CollapseAll(ctx, userID, 2025, time.May)
	assert.Empty(t, state)
	assert.Empty(t, svc.Get(ctx, userID, 2025, time.May))
}

func TestExpandService_StoreFailuresAreSwallowed(t *testing.T) {
	svc := grid.NewExpandService(failingStore{}, quietLogger())
	ctx := context.Background()
	userID := uuid.New()

	// Get on a broken store degrades to the collapsed default
	state := svc.Get(ctx, userID, 2025, time.May)
	assert.NotNil(t, state)
	assert.Empty(t, state)

	// Set and Toggle never panic or surface the error
	svc.Set(ctx, userID, 2025, time.May, grid.ExpandState{"X": true})
	state = svc.Toggle(ctx, userID, 2025, time.May, "X")
	assert.True(t, state.IsExpanded("X"))
}
