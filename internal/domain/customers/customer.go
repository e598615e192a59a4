// Package customers provides the customer catalog, keyed by phone number.
package customers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/tx"
	"robotpacc/internal/domain"
	"robotpacc/pkg/logger"
)

// Customer is a buyer of issued stock.
type Customer struct {
	Phone     string    `db:"phone" json:"phone"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks required fields.
func (c *Customer) Validate() error {
	c.Phone = strings.TrimSpace(c.Phone)
	c.Name = strings.TrimSpace(c.Name)
	if c.Phone == "" {
		return apperror.NewValidation("missing required field").WithDetail("field", "phone")
	}
	if c.Name == "" {
		return apperror.NewValidation("missing required field").WithDetail("field", "cname")
	}
	return nil
}

// Repository defines persistence for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Delete(ctx context.Context, phone string) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error)
}

// Service provides customer operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new customer service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager, now: time.Now}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create registers a customer.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.CreatedAt = s.now().UTC()

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByPhone(ctx, c.Phone)
		if err != nil {
			return fmt.Errorf("check customer phone: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("customer", "phone", c.Phone)
		}
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "customer created", "phone", c.Phone)
	return nil
}

// Get returns a customer by phone.
func (s *Service) Get(ctx context.Context, phone string) (*Customer, error) {
	return s.repo.GetByPhone(ctx, phone)
}

// List searches customers by phone or name substring.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error) {
	return s.repo.List(ctx, filter.Normalize())
}

// Delete removes a customer. Issues referencing the phone are kept.
func (s *Service) Delete(ctx context.Context, phone string) error {
	return s.repo.Delete(ctx, phone)
}
