package taxonomy

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for taxonomy persistence operations.
type Repository interface {
	// Create creates a new category entry
	Create(ctx context.Context, entry *Entry) error

	// GetByID retrieves a category entry by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListByUserID retrieves a user's taxonomy in declaration order
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]Entry, error)

	// Update updates a category entry
	Update(ctx context.Context, entry *Entry) error

	// Delete deletes a category entry
	Delete(ctx context.Context, id uuid.UUID) error
}
