package suppliers

import (
	"context"
	"fmt"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/tx"
	"robotpacc/internal/domain"
	"robotpacc/pkg/logger"
)

// Service provides supplier operations.
type Service struct {
	repo      Repository
	items     ItemChecker
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new supplier service.
func NewService(repo Repository, items ItemChecker, txManager tx.Manager) *Service {
	return &Service{repo: repo, items: items, txManager: txManager, now: time.Now}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create registers a supplier. The linked item must exist now; the link is not
// re-checked later.
func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(); err != nil {
		return err
	}
	sup.CreatedAt = s.now().UTC()

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.items.ExistsByCode(ctx, sup.ItemCode)
		if err != nil {
			return fmt.Errorf("check item: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("item", sup.ItemCode)
		}

		exists, err := s.repo.ExistsByPhone(ctx, sup.Phone)
		if err != nil {
			return fmt.Errorf("check supplier phone: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("supplier", "phone", sup.Phone)
		}
		return s.repo.Create(ctx, sup)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "supplier created", "phone", sup.Phone, "itemcode", sup.ItemCode)
	return nil
}

// Get returns a supplier by phone.
func (s *Service) Get(ctx context.Context, phone string) (*Supplier, error) {
	return s.repo.GetByPhone(ctx, phone)
}

// List searches suppliers by phone or name substring.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supplier], error) {
	return s.repo.List(ctx, filter.Normalize())
}

// Delete removes a supplier. Receipts referencing the phone are kept.
func (s *Service) Delete(ctx context.Context, phone string) error {
	if err := s.repo.Delete(ctx, phone); err != nil {
		return err
	}
	logger.Info(ctx, "supplier deleted", "phone", phone)
	return nil
}
