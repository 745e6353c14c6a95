//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/platform/transaction"
	"github.com/lunargrid/lunargrid/internal/platform/user"
	"github.com/lunargrid/lunargrid/pkg/money"
	"github.com/lunargrid/lunargrid/testutil/testdb"
)

var testDB *testdb.TestDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = testdb.NewTestDB(ctx)
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}

	code := m.Run()

	testDB.Close(ctx)
	if code != 0 {
		panic("tests failed")
	}
}

func setupTest(t *testing.T) context.Context {
	ctx := context.Background()
	require.NoError(t, testDB.Reset(ctx))
	return ctx
}

func createTestUser(t *testing.T, ctx context.Context) uuid.UUID {
	userID := uuid.New()
	_, err := testDB.Pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, userID, "test-"+userID.String()[:8]+"@example.com", "hash")
	require.NoError(t, err)
	return userID
}

func newTestTransaction(userID uuid.UUID, category, subcategory string, date time.Time) *transaction.Transaction {
	now := time.Now().UTC()
	return &transaction.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        taxonomy.TypeExpense,
		Amount:      money.MustParse("12.50"),
		Date:        date,
		Category:    category,
		Subcategory: subcategory,
		Status:      transaction.StatusCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// User repository

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := setupTest(t)
	repo := NewUserRepository(testDB.Pool)

	now := time.Now().UTC()
	u := &user.User{
		ID:          uuid.New(),
		Email:       "alice@example.com",
		DisplayName: "Alice",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, u.SetPassword("correct-horse"))
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Alice", got.DisplayName)
	assert.Nil(t, got.LastLoginAt)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := setupTest(t)
	repo := NewUserRepository(testDB.Pool)

	now := time.Now().UTC()
	first := &user.User{ID: uuid.New(), Email: "dup@example.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, first.SetPassword("password123"))
	require.NoError(t, repo.Create(ctx, first))

	second := &user.User{ID: uuid.New(), Email: "dup@example.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, second.SetPassword("password123"))
	assert.ErrorIs(t, repo.Create(ctx, second), user.ErrUserAlreadyExists)
}

func TestUserRepository_GetMissing(t *testing.T) {
	ctx := setupTest(t)
	repo := NewUserRepository(testDB.Pool)

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

// Category repository

func TestCategoryRepository_RoundTrip(t *testing.T) {
	ctx := setupTest(t)
	repo := NewCategoryRepository(testDB.Pool)
	userID := createTestUser(t, ctx)

	now := time.Now().UTC()
	entry := &taxonomy.Entry{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          "Expenses",
		Type:          taxonomy.TypeExpense,
		Subcategories: []string{"Food", "Transport"},
		Position:      0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Transport"}, got.Subcategories)
	assert.Equal(t, taxonomy.TypeExpense, got.Type)
}

func TestCategoryRepository_ListOrderedByPosition(t *testing.T) {
	ctx := setupTest(t)
	repo := NewCategoryRepository(testDB.Pool)
	userID := createTestUser(t, ctx)

	now := time.Now().UTC()
	names := []string{"Income", "Expenses", "Savings"}
	for i, name := range names {
		entry := &taxonomy.Entry{
			ID: uuid.New(), UserID: userID, Name: name,
			Type: taxonomy.TypeIncome, Position: i,
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, repo.Create(ctx, entry))
	}

	entries, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, name := range names {
		assert.Equal(t, name, entries[i].Name)
	}
}

func TestCategoryRepository_DuplicateName(t *testing.T) {
	ctx := setupTest(t)
	repo := NewCategoryRepository(testDB.Pool)
	userID := createTestUser(t, ctx)

	now := time.Now().UTC()
	entry := &taxonomy.Entry{
		ID: uuid.New(), UserID: userID, Name: "Expenses",
		Type: taxonomy.TypeExpense, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, entry))

	dup := &taxonomy.Entry{
		ID: uuid.New(), UserID: userID, Name: "Expenses",
		Type: taxonomy.TypeExpense, CreatedAt: now, UpdatedAt: now,
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), taxonomy.ErrCategoryAlreadyExists)
}

// Transaction repository

func TestTransactionRepository_CreateAndGet(t *testing.T) {
	ctx := setupTest(t)
	repo := NewTransactionRepository(testDB.Pool)
	userID := createTestUser(t, ctx)

	tx := newTestTransaction(userID, "Expenses", "Food", time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, tx))

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("12.50"), got.Amount)
	assert.Equal(t, taxonomy.TypeExpense, got.Type)
	assert.Equal(t, 3, got.Day())
}

func TestTransactionRepository_ListByDateRangeHalfOpen(t *testing.T) {
	ctx := setupTest(t)
	repo := NewTransactionRepository(testDB.Pool)
	userID := createTestUser(t, ctx)

	inRange := newTestTransaction(userID, "Expenses", "Food", time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC))
	outOfRange := newTestTransaction(userID, "Expenses", "Food", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, inRange))
	require.NoError(t, repo.Create(ctx, outOfRange))

	from := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	txs, err := repo.ListByDateRange(ctx, userID, from, to)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, inRange.ID, txs[0].ID)
}

func TestTransactionRepository_DeleteMany(t *testing.T) {
	ctx := setupTest(t)
	repo := NewTransactionRepository(testDB.Pool)
	userID := createTestUser(t, ctx)
	otherUser := createTestUser(t, ctx)

	mine := newTestTransaction(userID, "Expenses", "Food", time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC))
	theirs := newTestTransaction(otherUser, "Expenses", "Food", time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, theirs))

	// Ownership is enforced: the other user's transaction survives
	deleted, err := repo.DeleteMany(ctx, userID, []uuid.UUID{mine.ID, theirs.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = repo.GetByID(ctx, theirs.ID)
	assert.NoError(t, err)
}

func TestTransactionRepository_DeleteManyEmpty(t *testing.T) {
	ctx := setupTest(t)
	repo := NewTransactionRepository(testDB.Pool)

	deleted, err := repo.DeleteMany(ctx, uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
