package grid

import "fmt"

// TaxonomyError reports a structural problem in the category configuration
// that makes aggregation unsafe. Defaulting a category's transaction type
// would mis-sign its amounts, so aggregation refuses to proceed and names
// the offending category instead.
type TaxonomyError struct {
	Category string
	Reason   string
}

func (e *TaxonomyError) Error() string {
	return fmt.Sprintf("invalid taxonomy for category %q: %s", e.Category, e.Reason)
}

// ErrDayOutOfRange reports a day outside 1..days-in-month for a cell
// operation.
type ErrDayOutOfRange struct {
	Day  int
	Days int
}

func (e *ErrDayOutOfRange) Error() string {
	return fmt.Sprintf("day %d out of range 1..%d", e.Day, e.Days)
}
