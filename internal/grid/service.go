package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/platform/transaction"
	"github.com/lunargrid/lunargrid/pkg/logger"
)

// TransactionSource supplies the month's transactions. The source may
// over-fetch; aggregation re-applies the month filter.
type TransactionSource interface {
	ListForMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]transaction.Transaction, error)
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}

// TaxonomySource supplies the user's category configuration.
type TaxonomySource interface {
	List(ctx context.Context, userID uuid.UUID) ([]taxonomy.Entry, error)
}

// MonthView is everything the HTTP layer needs to render one month: the
// visible table, the keyboard navigation sequence, and the orphan count.
type MonthView struct {
	Table       *Table       `json:"table"`
	Navigation  []Descriptor `json:"navigation"`
	OrphanCount int          `json:"orphan_count"`
	ExpandState ExpandState  `json:"expand_state"`
}

// Service orchestrates the grid: it pulls transactions and taxonomy,
// aggregates, and wires the expand state and cell editing around the
// result. Aggregation itself stays pure; all I/O lives at this seam.
type Service struct {
	transactions TransactionSource
	taxonomies   TaxonomySource
	expand       *ExpandService
	gateway      *Gateway
	log          *logger.Logger
}

// NewService creates a new grid service.
func NewService(txSource TransactionSource, taxSource TaxonomySource, expand *ExpandService, gateway *Gateway, log *logger.Logger) *Service {
	return &Service{
		transactions: txSource,
		taxonomies:   taxSource,
		expand:       expand,
		gateway:      gateway,
		log:          log.WithField("component", "grid"),
	}
}

// aggregateMonth fetches inputs and runs one aggregation pass.
func (s *Service) aggregateMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*Result, []transaction.Transaction, error) {
	txs, err := s.transactions.ListForMonth(ctx, userID, year, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	entries, err := s.taxonomies.List(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch taxonomy: %w", err)
	}

	res, err := Aggregate(txs, year, month, entries)
	if err != nil {
		return nil, nil, err
	}
	return res, txs, nil
}

// Month builds the full view of one month for the caller.
func (s *Service) Month(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*MonthView, error) {
	res, txs, err := s.aggregateMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	state := s.expand.Get(ctx, userID, year, month)
	return &MonthView{
		Table:       BuildTable(res, state),
		Navigation:  Navigation(res.Rows, state),
		OrphanCount: DetectOrphans(txs).Count,
		ExpandState: state,
	}, nil
}

// EditCell resolves the addressed cell against a fresh aggregation and
// forwards the edit through the gateway.
func (s *Service) EditCell(ctx context.Context, userID uuid.UUID, year int, month time.Month, edit CellEdit) (*transaction.Transaction, error) {
	res, _, err := s.aggregateMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	return s.gateway.Submit(ctx, userID, year, month, res.TransactionMap, edit)
}

// ClearCell deletes the transaction behind the addressed cell, if any.
func (s *Service) ClearCell(ctx context.Context, userID uuid.UUID, year int, month time.Month, category, subcategory string, day int) (bool, error) {
	res, _, err := s.aggregateMonth(ctx, userID, year, month)
	if err != nil {
		return false, err
	}
	return s.gateway.Clear(ctx, userID, res.TransactionMap, category, subcategory, day)
}

// SetExpandState replaces the persisted expand state for a month.
func (s *Service) SetExpandState(ctx context.Context, userID uuid.UUID, year int, month time.Month, state ExpandState) {
	s.expand.Set(ctx, userID, year, month, state)
}

// ToggleRow flips one category row's expand state.
func (s *Service) ToggleRow(ctx context.Context, userID uuid.UUID, year int, month time.Month, rowID string) ExpandState {
	return s.expand.Toggle(ctx, userID, year, month, rowID)
}

// ExpandAll expands every category row that has subcategories.
func (s *Service) ExpandAll(ctx context.Context, userID uuid.UUID, year int, month time.Month) (ExpandState, error) {
	res, _, err := s.aggregateMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	return s.expand.ExpandAll(ctx, userID, year, month, res.Rows), nil
}

// CollapseAll resets the month's expand state.
func (s *Service) CollapseAll(ctx context.Context, userID uuid.UUID, year int, month time.Month) ExpandState {
	return s.expand.CollapseAll(ctx, userID, year, month)
}

// Orphans reports the orphan transactions of a month.
func (s *Service) Orphans(ctx context.Context, userID uuid.UUID, year int, month time.Month) (OrphanReport, error) {
	txs, err := s.transactions.ListForMonth(ctx, userID, year, month)
	if err != nil {
		return OrphanReport{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return DetectOrphans(txs), nil
}

// CleanOrphans bulk-deletes the orphan transactions of a month through the
// transaction service and returns how many were removed.
func (s *Service) CleanOrphans(ctx context.Context, userID uuid.UUID, year int, month time.Month) (int, error) {
	report, err := s.Orphans(ctx, userID, year, month)
	if err != nil {
		return 0, err
	}
	if report.Count == 0 {
		return 0, nil
	}

	deleted, err := s.transactions.DeleteMany(ctx, userID, report.IDs())
	if err != nil {
		return 0, fmt.Errorf("failed to clean orphans: %w", err)
	}

	s.log.Info("cleaned orphan transactions",
		"user_id", userID, "year", year, "month", int(month), "deleted", deleted)
	return deleted, nil
}
