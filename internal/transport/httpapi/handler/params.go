package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// parseYearMonthQuery reads year and month from query parameters.
func parseYearMonthQuery(r *http.Request) (int, time.Month, error) {
	return parseYearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
}

// parseYearMonthPath reads year and month from chi URL parameters.
func parseYearMonthPath(r *http.Request) (int, time.Month, error) {
	return parseYearMonth(chi.URLParam(r, "year"), chi.URLParam(r, "month"))
}

// parseDateRangeQuery reads from and to query parameters as YYYY-MM-DD
// dates forming a half-open interval [from, to).
func parseDateRangeQuery(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date, expected YYYY-MM-DD")
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, errors.New("to must be after from")
	}
	return from, to, nil
}

func parseYearMonth(yearStr, monthStr string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1970 || year > 9999 {
		return 0, 0, errors.New("invalid year")
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("invalid month, expected 1-12")
	}

	return year, time.Month(month), nil
}
