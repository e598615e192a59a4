package domaintest

import (
	"time"

	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/customers"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/outward"
	"robotpacc/internal/domain/relations"
	"robotpacc/internal/domain/reports"
	"robotpacc/internal/domain/suppliers"
)

// Env wires every domain service over one in-memory Store with a fixed clock.
type Env struct {
	Store     *Store
	Now       time.Time
	Items     *items.Service
	Suppliers *suppliers.Service
	Customers *customers.Service
	Inward    *inward.Service
	Outward   *outward.Service
	Reports   *reports.Service
}

// NewEnv builds an Env whose clock always returns now.
func NewEnv(now time.Time) *Env {
	store := NewStore()
	clock := func() time.Time { return now }

	itemRepo := store.Items()
	itemSvc := items.NewService(itemRepo, store, store, store)
	itemSvc.WithNow(clock)

	supplierSvc := suppliers.NewService(store.Suppliers(), itemRepo, store)
	supplierSvc.WithNow(clock)

	customerSvc := customers.NewService(store.Customers(), store)
	customerSvc.WithNow(clock)

	validator := relations.NewValidator(itemRepo, store.Suppliers(), store.Inward(), store.Outward())

	inwardSvc := inward.NewService(store.Inward(), itemSvc.Ledger(), validator, store, store)
	inwardSvc.WithNow(clock)

	outwardSvc := outward.NewService(store.Outward(), itemSvc.Ledger(), validator, store, store)
	outwardSvc.WithNow(clock)

	reportSvc := reports.NewService(store, store.Reports(), itemSvc, inwardSvc, outwardSvc)
	reportSvc.WithNow(clock)

	return &Env{
		Store:     store,
		Now:       now,
		Items:     itemSvc,
		Suppliers: supplierSvc,
		Customers: customerSvc,
		Inward:    inwardSvc,
		Outward:   outwardSvc,
		Reports:   reportSvc,
	}
}

// PutItem stores an item with the given ledger state, bypassing the services.
func (e *Env) PutItem(code string, qty int64, avgCost string) {
	e.Store.Items().Put(items.Item{
		Code:         code,
		Name:         "Item " + code,
		Quantity:     qty,
		AvgCost:      types.MustMoney(avgCost),
		PurchaseDate: "01-15-2024",
		Expiry:       "12-31-2099",
		CreatedAt:    e.Now,
		UpdatedAt:    e.Now,
	})
}

// PutSupplier stores a supplier for itemCode.
func (e *Env) PutSupplier(phone, itemCode string) {
	e.Store.mu.Lock()
	defer e.Store.mu.Unlock()
	e.Store.suppliers[phone] = suppliers.Supplier{
		Phone:         phone,
		ItemCode:      itemCode,
		Name:          "Supplier " + phone,
		ContactPerson: "Contact",
		Email:         "orders@example.com",
		Address:       "1 Dock Road",
		CreatedAt:     e.Now,
	}
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Money returns a pointer to the parsed decimal.
func Money(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}
