package grid

import (
	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/platform/transaction"
)

// Descriptor is one stop in the keyboard-navigable sequence derived from
// the rendered grid. A collapsed category contributes itself and nothing
// else; an expanded one contributes itself followed by its children in row
// order.
type Descriptor struct {
	RowID       string `json:"row_id"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	IsCategory  bool   `json:"is_category"`
	Expanded    bool   `json:"expanded"`
}

// Navigation flattens the row tree into the sequence arrow-key navigation
// walks, honoring the expand state.
func Navigation(rows []CategoryRow, state ExpandState) []Descriptor {
	out := make([]Descriptor, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		expanded := state.IsExpanded(row.ID) && row.CanExpand()
		out = append(out, Descriptor{
			RowID:      row.ID,
			Category:   row.Category,
			IsCategory: true,
			Expanded:   expanded,
		})
		if !expanded {
			continue
		}
		for _, sub := range row.SubRows {
			out = append(out, Descriptor{
				RowID:       sub.ID,
				Category:    sub.Category,
				Subcategory: sub.Subcategory,
			})
		}
	}
	return out
}

// OrphanReport lists transactions excluded from the grid because their
// category or subcategory is blank. The report only identifies candidates;
// cleaning them up is an explicit external action.
type OrphanReport struct {
	Count        int                       `json:"count"`
	Transactions []transaction.Transaction `json:"transactions"`
}

// DetectOrphans scans the unfiltered transaction list for orphans.
func DetectOrphans(txs []transaction.Transaction) OrphanReport {
	var report OrphanReport
	for i := range txs {
		if txs[i].IsOrphan() {
			report.Transactions = append(report.Transactions, txs[i])
		}
	}
	report.Count = len(report.Transactions)
	return report
}

// IDs returns the ids of the orphan transactions, for bulk deletion.
func (r OrphanReport) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Transactions))
	for i, tx := range r.Transactions {
		ids[i] = tx.ID
	}
	return ids
}
