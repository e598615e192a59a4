package items

import (
	"context"
	"fmt"
	"strings"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/tx"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/audit"
	"robotpacc/pkg/logger"
)

// Service provides item catalog operations and the administrative stock overwrite.
type Service struct {
	repo      Repository
	ledger    *Ledger
	txManager tx.Manager
	recorder  audit.Recorder
	history   audit.Reader
	now       func() time.Time
}

// NewService creates a new item service.
func NewService(repo Repository, txManager tx.Manager, recorder audit.Recorder, history audit.Reader) *Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	if history == nil {
		history = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		ledger:    NewLedger(repo),
		txManager: txManager,
		recorder:  recorder,
		history:   history,
		now:       time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Ledger exposes the item ledger used by the movement processors.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// Create registers a new item with its opening quantity and cost.
func (s *Service) Create(ctx context.Context, item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByCode(ctx, item.Code)
		if err != nil {
			return fmt.Errorf("check item code: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("item", "itemcode", item.Code)
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return err
		}
		return s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityItem,
			EntityKey:  item.Code,
			Action:     audit.ActionCreate,
			Changes: map[string]any{
				"qty":     item.Quantity,
				"avgcost": item.AvgCost.String(),
			},
		})
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "item created", "itemcode", item.Code, "qty", item.Quantity)
	return nil
}

// Get returns an item by code.
func (s *Service) Get(ctx context.Context, code string) (*Item, error) {
	return s.ledger.Get(ctx, code)
}

// List returns items, optionally filtered by a name/code substring.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Item], error) {
	return s.repo.List(ctx, filter.Normalize())
}

// Update applies descriptive changes. The ledger columns of the patch are ignored.
func (s *Service) Update(ctx context.Context, code string, apply func(item *Item)) (*Item, error) {
	var updated *Item
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}
		before := item.Snapshot()
		qty, cost := item.Quantity, item.AvgCost

		apply(item)
		item.Code = code
		item.Quantity, item.AvgCost = qty, cost
		if err := item.Validate(); err != nil {
			return err
		}
		item.UpdatedAt = s.now().UTC()

		if err := s.repo.Update(ctx, item); err != nil {
			return err
		}
		updated = item
		return s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityItem,
			EntityKey:  code,
			Action:     audit.ActionUpdate,
			Changes:    audit.Diff(before, item.Snapshot()),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an item. Movements referencing it are left orphaned.
func (s *Service) Delete(ctx context.Context, code string) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, code); err != nil {
			return err
		}
		return s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityItem,
			EntityKey:  code,
			Action:     audit.ActionDelete,
			Changes: map[string]any{
				"qty":     item.Quantity,
				"avgcost": item.AvgCost.String(),
			},
		})
	})
	if err != nil {
		return err
	}

	logger.Warn(ctx, "item deleted, movement records keep their reference", "itemcode", code)
	return nil
}

// OverwriteStock is the administrative correction of quantity and average cost.
func (s *Service) OverwriteStock(ctx context.Context, code string, qty int64, avgCost types.Money) (*Item, error) {
	var result *Item
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.ledger.GetForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if err := s.ledger.SetQuantityAndCost(ctx, code, qty, avgCost); err != nil {
			return err
		}
		if err := s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityItem,
			EntityKey:  code,
			Action:     audit.ActionOverwrite,
			Changes: map[string]any{
				"qty":     map[string]any{"old": item.Quantity, "new": qty},
				"avgcost": map[string]any{"old": item.AvgCost.String(), "new": types.RoundCost(avgCost).String()},
			},
		}); err != nil {
			return err
		}
		item.Quantity = qty
		item.AvgCost = types.RoundCost(avgCost)
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "item stock overwritten", "itemcode", code, "qty", qty, "avgcost", avgCost.String())
	return result, nil
}

// History returns the audit trail of an item, newest first.
func (s *Service) History(ctx context.Context, code string, limit int) ([]audit.Entry, error) {
	// Deleted items keep their history, so existence is not required.
	if strings.TrimSpace(code) == "" {
		return nil, apperror.NewValidation("item code is required").WithDetail("field", "itemcode")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	entries, err := s.history.History(ctx, audit.EntityItem, code, limit)
	if err != nil {
		return nil, fmt.Errorf("item history: %w", err)
	}
	return entries, nil
}
