package outward

import (
	"context"
	"fmt"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/tx"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/audit"
	"robotpacc/internal/domain/items"
	"robotpacc/pkg/logger"
)

// ReferenceChecker validates the references of an issue.
type ReferenceChecker interface {
	CheckOutward(ctx context.Context, itemCode, uuid string) error
}

// ReferenceNumbers issues sequential invoice references.
type ReferenceNumbers interface {
	Next(ctx context.Context, prefix string, period time.Time) (string, error)
	// Observe keeps the sequence ahead of a reference supplied by the caller.
	Observe(ctx context.Context, prefix, reference string) error
}

// ReferencePrefix prefixes generated issue references.
const ReferencePrefix = "OUT"

// Service processes stock issues.
type Service struct {
	repo      Repository
	ledger    *items.Ledger
	refs      ReferenceChecker
	numbers   ReferenceNumbers
	txManager tx.Manager
	recorder  audit.Recorder
	now       func() time.Time
}

// NewService creates a new outward processor.
func NewService(repo Repository, ledger *items.Ledger, refs ReferenceChecker, txManager tx.Manager, recorder audit.Recorder) *Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		ledger:    ledger,
		refs:      refs,
		txManager: txManager,
		recorder:  recorder,
		now:       time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithReferenceNumbers enables reference generation for issues submitted
// without one.
func (s *Service) WithReferenceNumbers(numbers ReferenceNumbers) {
	s.numbers = numbers
}

// Process validates and records an issue, computes its profit and decrements
// the item's quantity. Average cost is not changed by issues.
func (s *Service) Process(ctx context.Context, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		logger.Debug(ctx, "outward movement rejected", "itemcode", in.ItemCode, "uuid", in.UUID, "error", err)
		return nil, err
	}
	issue := in.toIssue(s.now().UTC())

	var result *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.refs.CheckOutward(ctx, issue.ItemCode, issue.UUID); err != nil {
			return err
		}

		item, err := s.ledger.GetForUpdate(ctx, issue.ItemCode)
		if err != nil {
			return err
		}

		// Sale value is compared with quantity-on-hand, not with the issued quantity.
		if issue.SaleValue.GreaterThan(types.FromQuantity(item.Quantity)) {
			return apperror.NewSaleValueExceedsStock(issue.ItemCode, item.Quantity, issue.SaleValue)
		}

		issue.Profit, issue.ProfitPercentage = Profit(issue.UnitPrice, item.AvgCost, issue.IssueQty)
		newQty := item.Quantity - issue.IssueQty

		if err := s.assignReference(ctx, issue); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, issue); err != nil {
			if apperror.IsConflict(err) {
				return apperror.NewConflict("outward movement uuid already used").
					WithDetail("uuid", issue.UUID).
					WithCause(err)
			}
			return fmt.Errorf("create issue: %w", err)
		}

		if err := s.ledger.SetQuantityAndCost(ctx, item.Code, newQty, item.AvgCost); err != nil {
			return err
		}

		if err := s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityItem,
			EntityKey:  item.Code,
			Action:     audit.ActionIssue,
			Changes: map[string]any{
				"uuid":   issue.UUID,
				"qty":    map[string]any{"old": item.Quantity, "new": newQty},
				"profit": issue.Profit.String(),
			},
		}); err != nil {
			return fmt.Errorf("audit issue: %w", err)
		}

		result = &Result{
			Issue:            issue,
			Profit:           issue.Profit,
			ProfitPercentage: issue.ProfitPercentage,
			PreviousQty:      item.Quantity,
			UpdatedQty:       newQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.UpdatedQty < 0 {
		logger.Warn(ctx, "item stock went negative", "itemcode", issue.ItemCode, "qty", result.UpdatedQty)
	}
	logger.Info(ctx, "outward movement recorded",
		"uuid", issue.UUID,
		"itemcode", issue.ItemCode,
		"reference", issue.Reference,
		"issueqty", issue.IssueQty,
		"profit", issue.Profit.String(),
		"qty", result.UpdatedQty,
	)
	return result, nil
}

func (s *Service) assignReference(ctx context.Context, issue *Issue) error {
	if s.numbers == nil {
		return nil
	}
	if issue.Reference != "" {
		if err := s.numbers.Observe(ctx, ReferencePrefix, issue.Reference); err != nil {
			return fmt.Errorf("observe issue reference: %w", err)
		}
		return nil
	}
	ref, err := s.numbers.Next(ctx, ReferencePrefix, issue.CreatedAt)
	if err != nil {
		return fmt.Errorf("next issue reference: %w", err)
	}
	issue.Reference = ref
	return nil
}

// Get returns an issue by UUID.
func (s *Service) Get(ctx context.Context, uuid string) (*Issue, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

// List returns issues, newest first unless ordered otherwise.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Issue], error) {
	return s.repo.List(ctx, filter.Normalize())
}

// Update corrects descriptive issue fields. Stored profit and the ledger are
// not recomputed.
func (s *Service) Update(ctx context.Context, uuid string, patch Patch) (*Issue, error) {
	var updated *Issue
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		i, err := s.repo.GetByUUID(ctx, uuid)
		if err != nil {
			return err
		}
		before := snapshot(i)

		if patch.Reference != nil {
			i.Reference = *patch.Reference
		}
		if patch.PartsAvgTotal != nil {
			if patch.PartsAvgTotal.IsNegative() {
				return apperror.NewValidation("parts average total must not be negative").
					WithDetail("field", "partsavgtot")
			}
			i.PartsAvgTotal = *patch.PartsAvgTotal
		}

		if err := s.repo.Update(ctx, i); err != nil {
			return err
		}
		updated = i
		return s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityOutward,
			EntityKey:  uuid,
			Action:     audit.ActionUpdate,
			Changes:    audit.Diff(before, snapshot(i)),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "outward movement updated", "uuid", uuid)
	return updated, nil
}

// Delete removes an issue record. The quantity already taken from the item
// is not restored.
func (s *Service) Delete(ctx context.Context, uuid string) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		i, err := s.repo.GetByUUID(ctx, uuid)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, uuid); err != nil {
			return err
		}
		return s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityOutward,
			EntityKey:  uuid,
			Action:     audit.ActionDelete,
			Changes:    snapshot(i),
		})
	})
	if err != nil {
		return err
	}

	logger.Warn(ctx, "outward movement deleted, ledger left unchanged", "uuid", uuid)
	return nil
}

func snapshot(i *Issue) map[string]any {
	return map[string]any{
		"itemcode":         i.ItemCode,
		"phone":            i.CustomerPhone,
		"reference":        i.Reference,
		"issueqty":         i.IssueQty,
		"salevalue":        i.SaleValue.String(),
		"partsavgtot":      i.PartsAvgTotal.String(),
		"profits":          i.Profit.String(),
		"profitpercentage": i.ProfitPercentage.String(),
	}
}
