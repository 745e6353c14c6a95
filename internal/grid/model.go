// Package grid implements the monthly budget grid: a pure aggregation of a
// flat transaction list into a category/subcategory by day-of-month pivot,
// plus the expand state, navigation and cell editing built around it.
//
// Aggregation is deterministic and side-effect free. The row tree, the
// cell-to-transaction index and the daily balances are recomputed from
// scratch on every input change; nothing here is incrementally patched.
package grid

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/pkg/money"
)

// DaysIn returns the number of days in (year, month), leap years included.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CellKey builds the "{category}-{subcategory}-{day}" address used by the
// TransactionMap and by UIs to target a specific cell.
func CellKey(category, subcategory string, day int) string {
	return fmt.Sprintf("%s-%s-%d", category, subcategory, day)
}

// RowID is the stable identifier of a category row.
func RowID(category string) string {
	return category
}

// SubRowID is the stable identifier of a subcategory row.
func SubRowID(category, subcategory string) string {
	return category + "::" + subcategory
}

// DailyAmounts maps day-of-month (1..N) to the signed amount for that day.
// Every day of the month is present, zero when nothing happened.
type DailyAmounts map[int]money.Cents

// Total sums the amounts across all days.
func (d DailyAmounts) Total() money.Cents {
	var total money.Cents
	for _, v := range d {
		total += v
	}
	return total
}

func newDailyAmounts(days int) DailyAmounts {
	d := make(DailyAmounts, days)
	for day := 1; day <= days; day++ {
		d[day] = 0
	}
	return d
}

// SubcategoryRow is a leaf row holding actual per-day transaction sums.
type SubcategoryRow struct {
	ID           string       `json:"id"`
	Category     string       `json:"category"`
	Subcategory  string       `json:"subcategory"`
	Custom       bool         `json:"custom"` // not declared in the taxonomy
	DailyAmounts DailyAmounts `json:"daily_amounts"`
	Total        money.Cents  `json:"total"`
}

// CategoryRow is a top-level row aggregating all subcategories under one
// taxonomy category. Its daily amounts are the element-wise sums of its
// sub rows; owning the sub rows is exclusive to this row for the pass.
type CategoryRow struct {
	ID           string                   `json:"id"`
	Category     string                   `json:"category"`
	Type         taxonomy.TransactionType `json:"type"`
	AdHoc        bool                     `json:"ad_hoc"` // synthesized, absent from taxonomy
	DailyAmounts DailyAmounts             `json:"daily_amounts"`
	Total        money.Cents              `json:"total"`
	SubRows      []SubcategoryRow         `json:"sub_rows"`
}

// CanExpand reports whether the row has children to reveal.
func (r *CategoryRow) CanExpand() bool {
	return len(r.SubRows) > 0
}

// TransactionMap resolves a cell key to the single transaction id the cell
// edits. When several transactions share a cell, the lexicographically
// greatest id wins; with time-ordered ids that is the most recent one.
type TransactionMap map[string]uuid.UUID

// Resolve looks up the transaction behind a cell, if any.
func (m TransactionMap) Resolve(category, subcategory string, day int) (uuid.UUID, bool) {
	id, ok := m[CellKey(category, subcategory, day)]
	return id, ok
}

// DailyBalances maps day-of-month to the net sum across all categories for
// that day. This is the per-day net, not a running balance; a cumulative
// series is a derived prefix-sum scan (see Table.CumulativeBalance).
type DailyBalances map[int]money.Cents

// Result is the complete output of one aggregation pass.
type Result struct {
	Year           int
	Month          time.Month
	Days           int
	Rows           []CategoryRow
	TransactionMap TransactionMap
	DailyBalances  DailyBalances
}
