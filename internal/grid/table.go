package grid

import (
	"strconv"
	"time"

	"github.com/lunargrid/lunargrid/pkg/money"
)

// Column describes one day column of the rendered table.
type Column struct {
	Key   string `json:"key"`
	Day   int    `json:"day"`
	Label string `json:"label"`
}

// TableRow is one visible row bound to the table host: either a category
// row (with expand affordances) or a subcategory row beneath an expanded
// category.
type TableRow struct {
	ID          string       `json:"id"`
	Category    string       `json:"category"`
	Subcategory string       `json:"subcategory,omitempty"`
	IsCategory  bool         `json:"is_category"`
	CanExpand   bool         `json:"can_expand"`
	Expanded    bool         `json:"expanded"`
	Amounts     DailyAmounts `json:"amounts"`
	Total       money.Cents  `json:"total"`
}

// Table binds one aggregation result and one expand state to a generic
// hierarchical table host: day columns, the visible rows only, and the
// balance ("SOLD") series across the bottom.
type Table struct {
	Year         int           `json:"year"`
	Month        time.Month    `json:"month"`
	Days         int           `json:"days"`
	Columns      []Column      `json:"columns"`
	Rows         []TableRow    `json:"rows"`
	Balance      DailyBalances `json:"balance"`
	BalanceTotal money.Cents   `json:"balance_total"`
}

// BuildTable projects an aggregation result through an expand state.
// Collapsed categories contribute one row; expanded ones are followed by
// their subcategory rows.
func BuildTable(res *Result, state ExpandState) *Table {
	columns := make([]Column, 0, res.Days)
	for day := 1; day <= res.Days; day++ {
		columns = append(columns, Column{
			Key:   "day-" + strconv.Itoa(day),
			Day:   day,
			Label: strconv.Itoa(day),
		})
	}

	var rows []TableRow
	for i := range res.Rows {
		row := &res.Rows[i]
		expanded := state.IsExpanded(row.ID) && row.CanExpand()
		rows = append(rows, TableRow{
			ID:         row.ID,
			Category:   row.Category,
			IsCategory: true,
			CanExpand:  row.CanExpand(),
			Expanded:   expanded,
			Amounts:    row.DailyAmounts,
			Total:      row.Total,
		})
		if !expanded {
			continue
		}
		for _, sub := range row.SubRows {
			rows = append(rows, TableRow{
				ID:          sub.ID,
				Category:    sub.Category,
				Subcategory: sub.Subcategory,
				Amounts:     sub.DailyAmounts,
				Total:       sub.Total,
			})
		}
	}

	var balanceTotal money.Cents
	for _, v := range res.DailyBalances {
		balanceTotal += v
	}

	return &Table{
		Year:         res.Year,
		Month:        res.Month,
		Days:         res.Days,
		Columns:      columns,
		Rows:         rows,
		Balance:      res.DailyBalances,
		BalanceTotal: balanceTotal,
	}
}

// CumulativeBalance derives the running balance as a prefix sum over days
// 1..N. Index i holds the balance at the end of day i+1.
func (t *Table) CumulativeBalance() []money.Cents {
	out := make([]money.Cents, t.Days)
	var running money.Cents
	for day := 1; day <= t.Days; day++ {
		running += t.Balance[day]
		out[day-1] = running
	}
	return out
}
