package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargrid/lunargrid/internal/platform/transaction"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi/handler"
)

type fakeTransactionService struct {
	txs       []transaction.Transaction
	lastFrom  time.Time
	lastTo    time.Time
	lastYear  int
	lastMonth time.Month
}

func (f *fakeTransactionService) Create(_ context.Context, tx *transaction.Transaction) (*transaction.Transaction, error) {
	tx.ID = uuid.New()
	return tx, nil
}

func (f *fakeTransactionService) Get(_ context.Context, _ uuid.UUID, id uuid.UUID) (*transaction.Transaction, error) {
	for i := range f.txs {
		if f.txs[i].ID == id {
			return &f.txs[i], nil
		}
	}
	return nil, transaction.ErrTransactionNotFound
}

func (f *fakeTransactionService) Update(_ context.Context, _ uuid.UUID, tx *transaction.Transaction) (*transaction.Transaction, error) {
	return tx, nil
}

func (f *fakeTransactionService) Delete(_ context.Context, _ uuid.UUID, _ uuid.UUID) error {
	return nil
}

func (f *fakeTransactionService) ListForMonth(_ context.Context, _ uuid.UUID, year int, month time.Month) ([]transaction.Transaction, error) {
	f.lastYear = year
	f.lastMonth = month
	return f.txs, nil
}

func (f *fakeTransactionService) ListForRange(_ context.Context, _ uuid.UUID, from, to time.Time) ([]transaction.Transaction, error) {
	f.lastFrom = from
	f.lastTo = to
	return f.txs, nil
}

func newTransactionRouter(svc *fakeTransactionService) http.Handler {
	h := handler.NewTransactionHandler(svc)
	r := chi.NewRouter()
	r.Use(withUser(uuid.New()))
	r.Get("/transactions", h.ListTransactions)
	return r
}

func TestListTransactions_ByMonth(t *testing.T) {
	svc := &fakeTransactionService{txs: []transaction.Transaction{{ID: uuid.New()}}}
	router := newTransactionRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions?year=2025&month=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2025, svc.lastYear)
	assert.Equal(t, time.May, svc.lastMonth)
}

func TestListTransactions_ByRange(t *testing.T) {
	svc := &fakeTransactionService{txs: []transaction.Transaction{{ID: uuid.New()}, {ID: uuid.New()}}}
	router := newTransactionRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions?from=2025-05-01&to=2025-07-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), svc.lastFrom)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), svc.lastTo)

	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
}

func TestListTransactions_RejectsBadRange(t *testing.T) {
	router := newTransactionRouter(&fakeTransactionService{})

	for _, query := range []string{
		"from=2025-05-01",                  // missing to
		"from=2025-05-01&to=2025-05-01",    // empty interval
		"from=2025-07-01&to=2025-05-01",    // inverted
		"from=not-a-date&to=2025-07-01",    // malformed from
		"from=2025-05-01&to=05%2F01%2F25",  // malformed to
	} {
		t.Run(query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions?"+query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
