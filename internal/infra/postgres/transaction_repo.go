package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/platform/transaction"
	"github.com/lunargrid/lunargrid/pkg/money"
)

// TransactionRepository implements the transaction repository interface
// using PostgreSQL. Amounts are stored as integer cents.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction in the database.
func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	query := `
		INSERT INTO transactions (id, user_id, transaction_type, amount_cents, date,
			category, subcategory, description, recurring, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		string(tx.Type),
		int64(tx.Amount),
		tx.Date,
		tx.Category,
		tx.Subcategory,
		tx.Description,
		tx.Recurring,
		string(tx.Status),
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, transaction_type, amount_cents, date,
			category, subcategory, description, recurring, status, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// ListByDateRange retrieves a user's transactions with date in [from, to),
// ordered by date.
func (r *TransactionRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]transaction.Transaction, error) {
	query := `
		SELECT id, user_id, transaction_type, amount_cents, date,
			category, subcategory, description, recurring, status, created_at, updated_at
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, created_at
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}

// Update updates a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	query := `
		UPDATE transactions
		SET transaction_type = $2, amount_cents = $3, date = $4, category = $5,
			subcategory = $6, description = $7, recurring = $8, status = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		tx.ID,
		string(tx.Type),
		int64(tx.Amount),
		tx.Date,
		tx.Category,
		tx.Subcategory,
		tx.Description,
		tx.Recurring,
		string(tx.Status),
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// Delete deletes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// DeleteMany deletes a batch of transactions owned by the user and returns
// how many rows were removed.
func (r *TransactionRepository) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM transactions WHERE user_id = $1 AND id = ANY($2)`

	result, err := r.pool.Exec(ctx, query, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}

	return int(result.RowsAffected()), nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var txType, status string
	var amount int64

	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&txType,
		&amount,
		&tx.Date,
		&tx.Category,
		&tx.Subcategory,
		&tx.Description,
		&tx.Recurring,
		&status,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Type = taxonomy.TransactionType(txType)
	tx.Amount = money.Cents(amount)
	tx.Status = transaction.Status(status)
	return &tx, nil
}
