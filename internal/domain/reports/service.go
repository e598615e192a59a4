package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"robotpacc/internal/core/tx"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/items"
	"robotpacc/pkg/logger"
)

const (
	DefaultTopSellingLimit = 5
	DefaultRecentLimit     = 10
	maxReportLimit         = 100
)

// Service provides report generation operations.
type Service struct {
	txm      tx.ReadOnlyManager
	repo     Repository
	items    ItemReader
	inwards  InwardLister
	outwards OutwardLister
	now      func() time.Time
}

// NewService creates a new reports service. Every report runs in its own
// read-only transaction.
func NewService(txm tx.ReadOnlyManager, repo Repository, items ItemReader, inwards InwardLister, outwards OutwardLister) *Service {
	return &Service{
		txm:      txm,
		repo:     repo,
		items:    items,
		inwards:  inwards,
		outwards: outwards,
		now:      time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// GetItem returns the current ledger state of one item.
func (s *Service) GetItem(ctx context.Context, code string) (*items.Item, error) {
	return s.items.Get(ctx, code)
}

// ListMovements returns one page of movements of the given kind.
func (s *Service) ListMovements(ctx context.Context, kind MovementKind, filter domain.ListFilter) (*MovementList, error) {
	if _, err := ParseMovementKind(string(kind)); err != nil {
		return nil, err
	}
	return readOnly(ctx, s.txm, func(ctx context.Context) (*MovementList, error) {
		return s.listMovements(ctx, kind, filter.Normalize())
	})
}

func (s *Service) listMovements(ctx context.Context, kind MovementKind, filter domain.ListFilter) (*MovementList, error) {
	list := &MovementList{Kind: kind, Limit: filter.Limit, Offset: filter.Offset}

	switch kind {
	case KindInward:
		res, err := s.inwards.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list inward movements: %w", err)
		}
		list.Inward = res.Items
		list.TotalCount = res.TotalCount
	case KindOutward:
		res, err := s.outwards.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list outward movements: %w", err)
		}
		list.Outward = res.Items
		list.TotalCount = res.TotalCount
	default:
		_, err := ParseMovementKind(string(kind))
		return nil, err
	}
	return list, nil
}

// ListLowStock returns items at or below their minimum stock threshold.
func (s *Service) ListLowStock(ctx context.Context) ([]*items.Item, error) {
	return readOnly(ctx, s.txm, func(ctx context.Context) ([]*items.Item, error) {
		list, err := s.repo.ListLowStock(ctx)
		if err != nil {
			return nil, fmt.Errorf("list low stock: %w", err)
		}
		return list, nil
	})
}

// ListExpired returns items whose expiry date is before today. Expiry is
// stored as text and parsed here; rows that do not parse are skipped.
func (s *Service) ListExpired(ctx context.Context) ([]*items.Item, error) {
	all, err := readOnly(ctx, s.txm, func(ctx context.Context) ([]*items.Item, error) {
		return s.repo.ListItemsWithExpiry(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list items with expiry: %w", err)
	}

	now := s.now()
	expired := make([]*items.Item, 0)
	for _, it := range all {
		ok, err := it.IsExpired(now)
		if err != nil {
			logger.Debug(ctx, "skipping item with unparseable expiry", "itemcode", it.Code, "expiry", it.Expiry)
			continue
		}
		if ok {
			expired = append(expired, it)
		}
	}
	return expired, nil
}

// StockOverview counts all, low-stock and expired items.
func (s *Service) StockOverview(ctx context.Context) (*StockOverview, error) {
	return readOnly(ctx, s.txm, func(ctx context.Context) (*StockOverview, error) {
		total, err := s.repo.CountItems(ctx)
		if err != nil {
			return nil, fmt.Errorf("count items: %w", err)
		}
		low, err := s.repo.CountLowStock(ctx)
		if err != nil {
			return nil, fmt.Errorf("count low stock: %w", err)
		}
		expired, err := s.ListExpired(ctx)
		if err != nil {
			return nil, err
		}
		return &StockOverview{
			TotalItems:    total,
			LowStockItems: low,
			ExpiredItems:  int64(len(expired)),
		}, nil
	})
}

// SalesSummary aggregates sale value and profit over all issues.
func (s *Service) SalesSummary(ctx context.Context) (*SalesSummary, error) {
	sum, err := readOnly(ctx, s.txm, s.repo.SalesSummary)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return sum, nil
}

// TopSelling ranks items by total issued quantity.
func (s *Service) TopSelling(ctx context.Context, limit int) ([]TopSellingItem, error) {
	top, err := readOnly(ctx, s.txm, func(ctx context.Context) ([]TopSellingItem, error) {
		return s.repo.TopSelling(ctx, clampLimit(limit, DefaultTopSellingLimit))
	})
	if err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}
	return top, nil
}

// RecentMovements returns the latest movements of both kinds, newest first.
func (s *Service) RecentMovements(ctx context.Context, limit int) ([]RecentMovement, error) {
	recent, err := readOnly(ctx, s.txm, func(ctx context.Context) ([]RecentMovement, error) {
		return s.repo.RecentMovements(ctx, clampLimit(limit, DefaultRecentLimit))
	})
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	return recent, nil
}

// ProfitsTotal sums stored profit over all issues.
func (s *Service) ProfitsTotal(ctx context.Context) (*ProfitsTotal, error) {
	total, err := readOnly(ctx, s.txm, s.repo.ProfitsTotal)
	if err != nil {
		return nil, fmt.Errorf("profits total: %w", err)
	}
	return &ProfitsTotal{TotalProfits: total}, nil
}

// AverageCost is the mean average cost across items.
func (s *Service) AverageCost(ctx context.Context) (*AverageCost, error) {
	avg, err := readOnly(ctx, s.txm, s.repo.AverageCost)
	if err != nil {
		return nil, fmt.Errorf("average cost: %w", err)
	}
	return &AverageCost{AvgCost: avg}, nil
}

// Dashboard runs every summary report concurrently. Each report opens its
// own read-only transaction since a pgx transaction is not safe for
// concurrent use.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{GeneratedAt: s.now().UTC()}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		overview, err := s.StockOverview(ctx)
		if err != nil {
			return err
		}
		d.Overview = overview
		return nil
	})

	g.Go(func() error {
		sales, err := s.SalesSummary(ctx)
		if err != nil {
			return err
		}
		d.Sales = sales
		return nil
	})

	g.Go(func() error {
		top, err := s.TopSelling(ctx, DefaultTopSellingLimit)
		if err != nil {
			return err
		}
		d.TopSelling = top
		return nil
	})

	g.Go(func() error {
		recent, err := s.RecentMovements(ctx, DefaultRecentLimit)
		if err != nil {
			return err
		}
		d.RecentMovements = recent
		return nil
	})

	g.Go(func() error {
		low, err := s.ListLowStock(ctx)
		if err != nil {
			return err
		}
		d.LowStock = low
		return nil
	})

	g.Go(func() error {
		total, err := s.ProfitsTotal(ctx)
		if err != nil {
			return err
		}
		d.ProfitsTotal = total.TotalProfits
		return nil
	})

	g.Go(func() error {
		avg, err := s.AverageCost(ctx)
		if err != nil {
			return err
		}
		d.AverageCost = avg.AvgCost
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxReportLimit {
		return maxReportLimit
	}
	return limit
}

func readOnly[T any](ctx context.Context, txm tx.ReadOnlyManager, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := txm.ReadOnly(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
