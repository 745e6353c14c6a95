package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for transaction persistence operations.
type Repository interface {
	// Create creates a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// GetByID retrieves a transaction by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// ListByDateRange retrieves a user's transactions with date in [from, to)
	ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Transaction, error)

	// Update updates a transaction
	Update(ctx context.Context, tx *Transaction) error

	// Delete deletes a transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteMany deletes a batch of transactions owned by the user
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}
