package grid

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/platform/transaction"
	"github.com/lunargrid/lunargrid/pkg/money"
)

// TransactionWriter is the slice of the transaction service the gateway
// delegates to. The gateway itself only constructs keys and resolves
// cells; it performs no persistence or network I/O of its own.
type TransactionWriter interface {
	Create(ctx context.Context, tx *transaction.Transaction) (*transaction.Transaction, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error)
	Update(ctx context.Context, userID uuid.UUID, tx *transaction.Transaction) (*transaction.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CellEdit is the payload of an inline edit on one grid cell.
type CellEdit struct {
	Category    string
	Subcategory string
	Day         int
	Amount      money.Cents // magnitude; sign comes from the category type
	Type        taxonomy.TransactionType
	Description string
}

// Gateway resolves grid cells to transactions and forwards edit intents to
// the transaction service.
type Gateway struct {
	txs TransactionWriter
}

// NewGateway creates a new cell editing gateway.
func NewGateway(txs TransactionWriter) *Gateway {
	return &Gateway{txs: txs}
}

// Resolve returns the transaction id a cell edits, if the cell is occupied.
func (g *Gateway) Resolve(m TransactionMap, category, subcategory string, day int) (uuid.UUID, bool) {
	return m.Resolve(category, subcategory, day)
}

// Submit applies a cell edit for (year, month): an occupied cell updates
// the resolved transaction, an empty one creates a new transaction dated to
// that day.
func (g *Gateway) Submit(ctx context.Context, userID uuid.UUID, year int, month time.Month, m TransactionMap, edit CellEdit) (*transaction.Transaction, error) {
	days := DaysIn(year, month)
	if edit.Day < 1 || edit.Day > days {
		return nil, &ErrDayOutOfRange{Day: edit.Day, Days: days}
	}

	category := strings.TrimSpace(edit.Category)
	subcategory := strings.TrimSpace(edit.Subcategory)

	if id, ok := g.Resolve(m, category, subcategory, edit.Day); ok {
		existing, err := g.txs.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		existing.Amount = edit.Amount.Abs()
		if edit.Type.IsValid() {
			existing.Type = edit.Type
		}
		if edit.Description != "" {
			existing.Description = edit.Description
		}
		return g.txs.Update(ctx, userID, existing)
	}

	tx := &transaction.Transaction{
		UserID:      userID,
		Type:        edit.Type,
		Amount:      edit.Amount.Abs(),
		Date:        time.Date(year, month, edit.Day, 0, 0, 0, 0, time.UTC),
		Category:    category,
		Subcategory: subcategory,
		Description: edit.Description,
		Status:      transaction.StatusCompleted,
	}
	return g.txs.Create(ctx, tx)
}

// Clear deletes the transaction behind a cell. Clearing an empty cell is a
// no-op and reports false.
func (g *Gateway) Clear(ctx context.Context, userID uuid.UUID, m TransactionMap, category, subcategory string, day int) (bool, error) {
	id, ok := g.Resolve(m, strings.TrimSpace(category), strings.TrimSpace(subcategory), day)
	if !ok {
		return false, nil
	}
	if err := g.txs.Delete(ctx, userID, id); err != nil {
		return false, err
	}
	return true, nil
}
