package transaction

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/pkg/money"
)

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPlanned   Status = "planned"   // Budgeted but not yet realized
	StatusCompleted Status = "completed" // Actually happened
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusCompleted:
		return true
	}
	return false
}

// Transaction is a single dated budget entry. Amount is a non-negative
// magnitude; the sign convention is applied by the grid from the category's
// transaction type.
type Transaction struct {
	ID          uuid.UUID                `json:"id"`
	UserID      uuid.UUID                `json:"user_id"`
	Type        taxonomy.TransactionType `json:"type"`
	Amount      money.Cents              `json:"amount"`
	Date        time.Time                `json:"date"` // day precision
	Category    string                   `json:"category"`
	Subcategory string                   `json:"subcategory"`
	Description string                   `json:"description,omitempty"`
	Recurring   bool                     `json:"recurring"`
	Status      Status                   `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// Validate checks transaction fields for creation and update.
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrInvalidUserID
	}

	if !t.Type.IsValid() {
		return ErrInvalidType
	}

	if t.Amount < 0 {
		return ErrNegativeAmount
	}

	if t.Date.IsZero() {
		return ErrMissingDate
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	if strings.TrimSpace(t.Category) == "" {
		return ErrMissingCategory
	}

	// A blank subcategory is stored but the grid treats it as an orphan.
	return nil
}

// IsOrphan reports whether the transaction is excluded from grid
// aggregation because its category or subcategory is blank.
func (t *Transaction) IsOrphan() bool {
	return strings.TrimSpace(t.Category) == "" || strings.TrimSpace(t.Subcategory) == ""
}

// Day returns the day-of-month of the transaction date.
func (t *Transaction) Day() int {
	return t.Date.Day()
}

// InMonth reports whether the transaction date falls within (year, month).
func (t *Transaction) InMonth(year int, month time.Month) bool {
	return t.Date.Year() == year && t.Date.Month() == month
}
