package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service handles transaction business logic.
type Service struct {
	repo Repository
}

// NewService creates a new transaction service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new transaction.
func (s *Service) Create(ctx context.Context, tx *Transaction) (*Transaction, error) {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.Status == "" {
		tx.Status = StatusCompleted
	}

	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	tx.Date = truncateToDay(tx.Date)

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// Get retrieves a transaction, checking ownership.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		// Hide other users' transactions behind not-found
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// Update validates and stores changes to an existing transaction.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, tx *Transaction) (*Transaction, error) {
	existing, err := s.Get(ctx, userID, tx.ID)
	if err != nil {
		return nil, err
	}

	tx.UserID = existing.UserID
	tx.CreatedAt = existing.CreatedAt
	tx.UpdatedAt = time.Now()
	tx.Date = truncateToDay(tx.Date)

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return tx, nil
}

// Delete removes a transaction, checking ownership.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

// DeleteMany removes a batch of the user's transactions and returns how
// many were deleted. Used by the orphan cleanup action.
func (s *Service) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	deleted, err := s.repo.DeleteMany(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}

	return deleted, nil
}

// ListForMonth returns all of the user's transactions dated within
// (year, month). The repository query is a half-open range on the first of
// the month.
func (s *Service) ListForMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]Transaction, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	txs, err := s.repo.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// ListForRange returns the user's transactions with date in [from, to).
func (s *Service) ListForRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Transaction, error) {
	txs, err := s.repo.ListByDateRange(ctx, userID, truncateToDay(from), truncateToDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
