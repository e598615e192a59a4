// Package app wires repositories and domain services over one connection pool.
package app

import (
	"context"
	"fmt"

	"robotpacc/internal/config"
	"robotpacc/internal/domain/customers"
	"robotpacc/internal/domain/export"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/outward"
	"robotpacc/internal/domain/relations"
	"robotpacc/internal/domain/reports"
	"robotpacc/internal/domain/suppliers"
	v1 "robotpacc/internal/infrastructure/http/v1"
	"robotpacc/internal/infrastructure/http/v1/handlers"
	"robotpacc/internal/infrastructure/storage/postgres"
	"robotpacc/internal/infrastructure/storage/postgres/catalog_repo"
	"robotpacc/internal/infrastructure/storage/postgres/movement_repo"
	"robotpacc/internal/infrastructure/storage/postgres/report_repo"
	"robotpacc/pkg/logger"
	"robotpacc/pkg/numerator"
)

// Services holds every domain service.
type Services struct {
	Items     *items.Service
	Suppliers *suppliers.Service
	Customers *customers.Service
	Inward    *inward.Service
	Outward   *outward.Service
	Reports   *reports.Service
	Export    *export.Service
}

// NewServices builds the PostgreSQL repositories and the services on top of them.
func NewServices(pool *postgres.Pool, cfg *config.Config) (*Services, error) {
	txm := postgres.NewTxManager(pool, cfg.DBStatementTimeout)

	auditSvc, err := postgres.NewAuditService(txm, cfg.AuditCompressThreshold)
	if err != nil {
		return nil, fmt.Errorf("audit service: %w", err)
	}

	itemRepo := catalog_repo.NewItemRepo(txm)
	supplierRepo := catalog_repo.NewSupplierRepo(txm)
	customerRepo := catalog_repo.NewCustomerRepo(txm)
	inwardRepo := movement_repo.NewInwardRepo(txm)
	outwardRepo := movement_repo.NewOutwardRepo(txm)

	itemSvc := items.NewService(itemRepo, txm, auditSvc, auditSvc)
	refs := relations.NewValidator(itemRepo, supplierRepo, inwardRepo, outwardRepo)
	inwardSvc := inward.NewService(inwardRepo, itemSvc.Ledger(), refs, txm, auditSvc)
	outwardSvc := outward.NewService(outwardRepo, itemSvc.Ledger(), refs, txm, auditSvc)
	outwardSvc.WithReferenceNumbers(numerator.NewWithResolver(func(ctx context.Context) numerator.Querier {
		return txm.GetQuerier(ctx)
	}))

	return &Services{
		Items:     itemSvc,
		Suppliers: suppliers.NewService(supplierRepo, itemRepo, txm),
		Customers: customers.NewService(customerRepo, txm),
		Inward:    inwardSvc,
		Outward:   outwardSvc,
		Reports:   reports.NewService(txm, report_repo.NewReportRepo(txm), itemSvc, inwardSvc, outwardSvc),
		Export:    export.NewService(inwardSvc, outwardSvc),
	}, nil
}

// RouterConfig returns the HTTP router configuration for s.
func (s *Services) RouterConfig(db handlers.DBHealth, log *logger.Logger, debug bool) v1.RouterConfig {
	return v1.RouterConfig{
		Items:     s.Items,
		Suppliers: s.Suppliers,
		Customers: s.Customers,
		Inward:    s.Inward,
		Outward:   s.Outward,
		Reports:   s.Reports,
		Export:    s.Export,
		DB:        db,
		Logger:    log,
		Debug:     debug,
	}
}
