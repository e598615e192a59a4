package inward

import (
	"context"
	"fmt"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/tx"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/audit"
	"robotpacc/internal/domain/items"
	"robotpacc/pkg/logger"
)

// ReferenceChecker validates the references of a receipt.
type ReferenceChecker interface {
	CheckInward(ctx context.Context, itemCode, supplierPhone, uuid string) error
}

// Service processes stock receipts.
type Service struct {
	repo      Repository
	ledger    *items.Ledger
	refs      ReferenceChecker
	txManager tx.Manager
	recorder  audit.Recorder
	now       func() time.Time
}

// NewService creates a new inward processor.
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

// Process validates and records a receipt, then blends it into the item's
// quantity and average cost. Record and ledger update commit together.
func (s *Service) Process(ctx context.Context, in Input) (*Result, error) {
	now := s.now()
	if err := in.Validate(now); err != nil {
		logger.Debug(ctx, "inward movement rejected", "itemcode", in.ItemCode, "uuid", in.UUID, "error", err)
		return nil, err
	}
	receipt := in.toReceipt(now.UTC())

	var result *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.refs.CheckInward(ctx, receipt.ItemCode, receipt.SupplierPhone, receipt.UUID); err != nil {
			return err
		}

		item, err := s.ledger.GetForUpdate(ctx, receipt.ItemCode)
		if err != nil {
			return err
		}

		newQty, newAvg, err := WeightedAverage(item.Quantity, item.AvgCost, receipt.AcceptedQty, receipt.UnitPrice)
		if err != nil {
			return err
		}

		if err := s.repo.Create(ctx, receipt); err != nil {
			if apperror.IsConflict(err) {
				return apperror.NewConflict("inward movement uuid already used").
					WithDetail("uuid", receipt.UUID).
					WithCause(err)
			}
			return fmt.Errorf("create receipt: %w", err)
		}

		if err := s.ledger.SetQuantityAndCost(ctx, item.Code, newQty, newAvg); err != nil {
			return err
		}

		if err := s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityItem,
			EntityKey:  item.Code,
			Action:     audit.ActionReceipt,
			Changes: map[string]any{
				"uuid":    receipt.UUID,
				"qty":     map[string]any{"old": item.Quantity, "new": newQty},
				"avgcost": map[string]any{"old": item.AvgCost.String(), "new": newAvg.String()},
			},
		}); err != nil {
			return fmt.Errorf("audit receipt: %w", err)
		}

		result = &Result{
			Receipt:         receipt,
			PreviousQty:     item.Quantity,
			PreviousAvgCost: item.AvgCost,
			UpdatedQty:      newQty,
			AvgCost:         newAvg,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "inward movement recorded",
		"uuid", receipt.UUID,
		"itemcode", receipt.ItemCode,
		"acceptqty", receipt.AcceptedQty,
		"qty", result.UpdatedQty,
		"avgcost", result.AvgCost.String(),
	)
	return result, nil
}

// Get returns a receipt by UUID.
func (s *Service) Get(ctx context.Context, uuid string) (*Receipt, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

// List returns receipts, newest first unless ordered otherwise.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Receipt], error) {
	return s.repo.List(ctx, filter.Normalize())
}

// Update corrects descriptive receipt fields. The ledger is not touched.
func (s *Service) Update(ctx context.Context, uuid string, patch Patch) (*Receipt, error) {
	now := s.now()
	var updated *Receipt
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		r, err := s.repo.GetByUUID(ctx, uuid)
		if err != nil {
			return err
		}
		before := snapshot(r)

		if patch.BuildQty != nil {
			r.BuildQty = *patch.BuildQty
		}
		if patch.ReceivedQty != nil {
			r.ReceivedQty = *patch.ReceivedQty
		}
		if patch.RejectedQty != nil {
			r.RejectedQty = *patch.RejectedQty
		}
		if patch.YearOfManufacture != nil {
			r.YearOfManufacture = *patch.YearOfManufacture
		}
		if r.BuildQty < 0 || r.ReceivedQty < 0 {
			return apperror.NewValidation("quantity must not be negative").WithDetail("uuid", uuid)
		}
		if err := validateYear(r.YearOfManufacture, now); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, r); err != nil {
			return err
		}
		updated = r
		return s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityInward,
			EntityKey:  uuid,
			Action:     audit.ActionUpdate,
			Changes:    audit.Diff(before, snapshot(r)),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "inward movement updated", "uuid", uuid)
	return updated, nil
}

// Delete removes a receipt record. Quantity and average cost already applied
// to the item stay as they are.
func (s *Service) Delete(ctx context.Context, uuid string) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		r, err := s.repo.GetByUUID(ctx, uuid)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, uuid); err != nil {
			return err
		}
		return s.recorder.Record(ctx, audit.Change{
			EntityType: audit.EntityInward,
			EntityKey:  uuid,
			Action:     audit.ActionDelete,
			Changes:    snapshot(r),
		})
	})
	if err != nil {
		return err
	}

	logger.Warn(ctx, "inward movement deleted, ledger left unchanged", "uuid", uuid)
	return nil
}

func snapshot(r *Receipt) map[string]any {
	return map[string]any{
		"itemcode":       r.ItemCode,
		"phone":          r.SupplierPhone,
		"buildqty":       r.BuildQty,
		"reciveqty":      r.ReceivedQty,
		"acceptqty":      r.AcceptedQty,
		"rejectqty":      r.RejectedQty,
		"yearmanufactor": r.YearOfManufacture,
		"price":          r.UnitPrice.String(),
	}
}
