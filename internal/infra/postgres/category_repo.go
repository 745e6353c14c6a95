package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
)

// CategoryRepository implements the taxonomy repository interface using
// PostgreSQL. Subcategories are stored as a text array so declaration order
// survives round trips.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL category repository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category entry in the database.
func (r *CategoryRepository) Create(ctx context.Context, entry *taxonomy.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	query := `
		INSERT INTO categories (id, user_id, name, transaction_type, subcategories, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Name,
		string(entry.Type),
		entry.Subcategories,
		entry.Position,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return taxonomy.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category entry by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*taxonomy.Entry, error) {
	query := `
		SELECT id, user_id, name, transaction_type, subcategories, position, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	entry, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, taxonomy.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return entry, nil
}

// ListByUserID retrieves a user's taxonomy in declaration order.
func (r *CategoryRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]taxonomy.Entry, error) {
	query := `
		SELECT id, user_id, name, transaction_type, subcategories, position, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY position, created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var entries []taxonomy.Entry
	for rows.Next() {
		entry, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return entries, nil
}

// Update updates a category entry.
func (r *CategoryRepository) Update(ctx context.Context, entry *taxonomy.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	query := `
		UPDATE categories
		SET name = $2, transaction_type = $3, subcategories = $4, position = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Name,
		string(entry.Type),
		entry.Subcategories,
		entry.Position,
		entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return taxonomy.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return taxonomy.ErrCategoryNotFound
	}

	return nil
}

// Delete deletes a category entry.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return taxonomy.ErrCategoryNotFound
	}

	return nil
}

func scanCategory(row pgx.Row) (*taxonomy.Entry, error) {
	var entry taxonomy.Entry
	var txType string

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Name,
		&txType,
		&entry.Subcategories,
		&entry.Position,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Type = taxonomy.TransactionType(txType)
	return &entry, nil
}
