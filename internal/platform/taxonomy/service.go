package taxonomy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles taxonomy business logic.
type Service struct {
	repo Repository
}

// NewService creates a new taxonomy service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's taxonomy in declaration order.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	entries, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxonomy: %w", err)
	}
	return entries, nil
}

// Create adds a new category at the end of the user's taxonomy.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, name string, txType TransactionType, subcategories []string) (*Entry, error) {
	existing, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxonomy: %w", err)
	}

	name = strings.TrimSpace(name)
	for _, e := range existing {
		if e.Name == name {
			return nil, ErrCategoryAlreadyExists
		}
	}

	now := time.Now()
	entry := &Entry{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Type:          txType,
		Subcategories: trimAll(subcategories),
		Position:      len(existing),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return entry, nil
}

// Update replaces a category's name, type and subcategory list.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, name string, txType TransactionType, subcategories []string) (*Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrCategoryNotFound
	}

	entry.Name = strings.TrimSpace(name)
	entry.Type = txType
	entry.Subcategories = trimAll(subcategories)
	entry.UpdatedAt = time.Now()

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return entry, nil
}

// Delete removes a category from the taxonomy. Transactions referencing the
// deleted category keep their labels and surface in the grid as an ad-hoc
// category.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return ErrCategoryNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSpace(n))
	}
	return out
}
