package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargrid/lunargrid/internal/grid"
	"github.com/lunargrid/lunargrid/internal/infra/memory"
)

func TestExpandStore_RoundTrip(t *testing.T) {
	store := memory.NewExpandStore()
	ctx := context.Background()
	userID := uuid.New()

	state, err := store.Get(ctx, userID, 2025, time.May)
	require.NoError(t, err)
	assert.Empty(t, state)

	require.NoError(t, store.Set(ctx, userID, 2025, time.May, grid.ExpandState{"Expenses": true}))

	state, err = store.Get(ctx, userID, 2025, time.May)
	require.NoError(t, err)
	assert.True(t, state.IsExpanded("Expenses"))

	// Months are isolated
	state, err = store.Get(ctx, userID, 2025, time.June)
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestExpandStore_EmptyStateDeletes(t *testing.T) {
	store := memory.NewExpandStore()
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Set(ctx, userID, 2025, time.May, grid.ExpandState{"Expenses": true}))
	require.NoError(t, store.Set(ctx, userID, 2025, time.May, grid.ExpandState{}))

	state, err := store.Get(ctx, userID, 2025, time.May)
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestExpandStore_CopiesOnReadAndWrite(t *testing.T) {
	store := memory.NewExpandStore()
	ctx := context.Background()
	userID := uuid.New()

	original := grid.ExpandState{"Expenses": true}
	require.NoError(t, store.Set(ctx, userID, 2025, time.May, original))
	original["Income"] = true

	state, err := store.Get(ctx, userID, 2025, time.May)
	require.NoError(t, err)
	assert.False(t, state.IsExpanded("Income"))

	state["Income"] = true
	again, err := store.Get(ctx, userID, 2025, time.May)
	require.NoError(t, err)
	assert.False(t, again.IsExpanded("Income"))
}
