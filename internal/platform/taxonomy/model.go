package taxonomy

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies a category and determines the sign convention
// applied to its amounts in the grid.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypeSaving  TransactionType = "saving"
)

// IsValid checks if the transaction type is one of the known values.
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeSaving:
		return true
	}
	return false
}

// Sign returns the sign convention for amounts of this type: expenses are
// negative, income and savings positive.
func (t TransactionType) Sign() int {
	if t == TypeExpense {
		return -1
	}
	return 1
}

// Entry is one category of the taxonomy: a named category, its declared
// subcategories in display order, and the transaction type its amounts
// carry. Entries are immutable for the lifetime of an aggregation pass.
type Entry struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Name          string          `json:"name"`
	Type          TransactionType `json:"type"`
	Subcategories []string        `json:"subcategories"`
	Position      int             `json:"position"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Validate checks the entry for structural problems.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrMissingCategoryName
	}

	if len(e.Name) > 100 {
		return ErrCategoryNameTooLong
	}

	if !e.Type.IsValid() {
		return ErrInvalidTransactionType
	}

	seen := make(map[string]struct{}, len(e.Subcategories))
	for _, sub := range e.Subcategories {
		trimmed := strings.TrimSpace(sub)
		if trimmed == "" {
			return ErrBlankSubcategory
		}
		if _, dup := seen[trimmed]; dup {
			return ErrDuplicateSubcategory
		}
		seen[trimmed] = struct{}{}
	}

	return nil
}
