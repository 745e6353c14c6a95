package grid

import (
	"sort"
	"strings"
	"time"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/platform/transaction"
)

// Aggregate turns a flat transaction list into the monthly grid for
// (year, month): category rows in taxonomy declaration order, subcategory
// rows beneath them, a cell-to-transaction index and the per-day balances.
//
// The input list may over-fetch; the month filter happens here. Orphan
// transactions (blank category or subcategory after trimming) are excluded
// from the row tree, never from the caller's list. The output depends only
// on the set of inputs, not on their order.
func Aggregate(txs []transaction.Transaction, year int, month time.Month, entries []taxonomy.Entry) (*Result, error) {
	if err := checkTaxonomy(entries); err != nil {
		return nil, err
	}

	days := DaysIn(year, month)

	// Builders for every category that will surface: taxonomy categories
	// first, in declaration order; ad-hoc categories from transactions are
	// appended later in lexicographic order so the result never depends on
	// transaction arrival order.
	builders := make(map[string]*categoryBuilder, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		b := newCategoryBuilder(e.Name, e.Type, false)
		for _, sub := range e.Subcategories {
			b.addSub(sub, false, days)
		}
		builders[e.Name] = b
		order = append(order, e.Name)
	}

	// First pass: surface ad-hoc categories and custom subcategories so the
	// row skeleton is complete before any amount lands.
	var adHoc []string
	for i := range txs {
		tx := &txs[i]
		if !tx.InMonth(year, month) || tx.IsOrphan() {
			continue
		}
		cat := strings.TrimSpace(tx.Category)
		sub := strings.TrimSpace(tx.Subcategory)

		b, ok := builders[cat]
		if !ok {
			b = newCategoryBuilder(cat, tx.Type, true)
			builders[cat] = b
			adHoc = append(adHoc, cat)
		}
		if _, exists := b.subs[sub]; !exists {
			b.addSub(sub, true, days)
		}
		if b.adHoc {
			b.noteAdHocType(tx)
		}
	}
	sort.Strings(adHoc)
	order = append(order, adHoc...)

	// Second pass: accumulate signed amounts and resolve the cell index.
	txMap := make(TransactionMap)
	for i := range txs {
		tx := &txs[i]
		if !tx.InMonth(year, month) || tx.IsOrphan() {
			continue
		}
		cat := strings.TrimSpace(tx.Category)
		sub := strings.TrimSpace(tx.Subcategory)
		day := tx.Day()

		b := builders[cat]
		signed := tx.Amount.Abs()
		if b.signFor(tx) < 0 {
			signed = -signed
		}
		b.subs[sub].DailyAmounts[day] += signed

		// Duplicate cells sum their amounts but index a single winner:
		// the lexicographically greatest transaction id.
		key := CellKey(cat, sub, day)
		if current, ok := txMap[key]; !ok || tx.ID.String() > current.String() {
			txMap[key] = tx.ID
		}
	}

	// Assemble rows: subcategory totals, element-wise category sums, and
	// the per-day net across everything.
	rows := make([]CategoryRow, 0, len(order))
	balances := make(DailyBalances, days)
	for day := 1; day <= days; day++ {
		balances[day] = 0
	}

	for _, cat := range order {
		b := builders[cat]
		row := CategoryRow{
			ID:           RowID(cat),
			Category:     cat,
			Type:         b.rowType(),
			AdHoc:        b.adHoc,
			DailyAmounts: newDailyAmounts(days),
			SubRows:      make([]SubcategoryRow, 0, len(b.subOrder)),
		}

		for _, subName := range b.orderedSubs() {
			subRow := b.subs[subName]
			subRow.Total = subRow.DailyAmounts.Total()
			for day, amount := range subRow.DailyAmounts {
				row.DailyAmounts[day] += amount
			}
			row.SubRows = append(row.SubRows, *subRow)
		}

		row.Total = row.DailyAmounts.Total()
		for day, amount := range row.DailyAmounts {
			balances[day] += amount
		}
		rows = append(rows, row)
	}

	return &Result{
		Year:           year,
		Month:          month,
		Days:           days,
		Rows:           rows,
		TransactionMap: txMap,
		DailyBalances:  balances,
	}, nil
}

// checkTaxonomy rejects configurations that would mis-sign amounts.
func checkTaxonomy(entries []taxonomy.Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return &TaxonomyError{Category: e.Name, Reason: "blank category name"}
		}
		if _, dup := seen[name]; dup {
			return &TaxonomyError{Category: name, Reason: "duplicate category"}
		}
		seen[name] = struct{}{}
		if !e.Type.IsValid() {
			return &TaxonomyError{Category: name, Reason: "missing or invalid transaction type"}
		}
	}
	return nil
}

// categoryBuilder accumulates one category's sub rows during aggregation.
type categoryBuilder struct {
	name      string
	catType   taxonomy.TransactionType
	adHoc     bool
	subs      map[string]*SubcategoryRow
	subOrder  []string // declared subcategories, in taxonomy order
	customSet []string // custom subcategories, sorted on demand

	// For ad-hoc categories the row type comes from the transaction with
	// the greatest id, so it cannot depend on input order.
	adHocTypeTxID string
	adHocType     taxonomy.TransactionType
}

func newCategoryBuilder(name string, catType taxonomy.TransactionType, adHoc bool) *categoryBuilder {
	return &categoryBuilder{
		name:    name,
		catType: catType,
		adHoc:   adHoc,
		subs:    make(map[string]*SubcategoryRow),
	}
}

func (b *categoryBuilder) addSub(name string, custom bool, days int) {
	b.subs[name] = &SubcategoryRow{
		ID:           SubRowID(b.name, name),
		Category:     b.name,
		Subcategory:  name,
		Custom:       custom,
		DailyAmounts: newDailyAmounts(days),
	}
	if custom {
		b.customSet = append(b.customSet, name)
	} else {
		b.subOrder = append(b.subOrder, name)
	}
}

// orderedSubs returns declared subcategories in taxonomy order followed by
// custom ones in lexicographic order.
func (b *categoryBuilder) orderedSubs() []string {
	sort.Strings(b.customSet)
	out := make([]string, 0, len(b.subOrder)+len(b.customSet))
	out = append(out, b.subOrder...)
	out = append(out, b.customSet...)
	return out
}

// signFor returns the sign convention for one transaction's contribution.
// Taxonomy categories sign by their configured type; ad-hoc categories have
// no configuration, so each transaction signs by its own type.
func (b *categoryBuilder) signFor(tx *transaction.Transaction) int {
	if b.adHoc {
		return tx.Type.Sign()
	}
	return b.catType.Sign()
}

func (b *categoryBuilder) noteAdHocType(tx *transaction.Transaction) {
	if id := tx.ID.String(); id > b.adHocTypeTxID {
		b.adHocTypeTxID = id
		b.adHocType = tx.Type
	}
}

func (b *categoryBuilder) rowType() taxonomy.TransactionType {
	if b.adHoc && b.adHocType != "" {
		return b.adHocType
	}
	return b.catType
}
