// Package catalog_repo provides PostgreSQL repositories for items and counterparties.
package catalog_repo

import (
	"context"
	"time"

	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/infrastructure/storage/postgres"
)

const itemsTable = "items"

var _ items.Repository = (*ItemRepo)(nil)

// ledgerColumns are written only by UpdateStock.
var ledgerColumns = []string{"item_code", "qty", "avg_cost", "created_at"}

// ItemRepo implements items.Repository.
type ItemRepo struct {
	*postgres.KeyedRepo[*items.Item]
	now func() time.Time
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		KeyedRepo: postgres.NewKeyedRepo(txm, postgres.TableSpec{
			Table:         itemsTable,
			KeyColumn:     "item_code",
			Entity:        "item",
			SearchColumns: []string{"item_code", "item_name"},
			ItemColumn:    "item_code",
			DefaultOrder:  "item_name ASC",
		}, postgres.ExtractDBColumns[items.Item](), func() *items.Item { return &items.Item{} }),
		now: time.Now,
	}
}

// Create implements items.Repository.
func (r *ItemRepo) Create(ctx context.Context, item *items.Item) error {
	return r.Insert(ctx, item)
}

// GetByCode implements items.LedgerStore.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*items.Item, error) {
	return r.GetByKey(ctx, code)
}

// GetByCodeForUpdate implements items.LedgerStore.
func (r *ItemRepo) GetByCodeForUpdate(ctx context.Context, code string) (*items.Item, error) {
	return r.GetByKeyForUpdate(ctx, code)
}

// ExistsByCode implements items.Repository.
func (r *ItemRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.ExistsByKey(ctx, code)
}

// UpdateStock implements items.LedgerStore.
func (r *ItemRepo) UpdateStock(ctx context.Context, code string, qty int64, avgCost types.Money) error {
	return r.UpdateColumns(ctx, code, map[string]any{
		"qty":        qty,
		"avg_cost":   avgCost,
		"updated_at": r.now().UTC(),
	})
}

// Update implements items.Repository. Ledger columns are left untouched.
func (r *ItemRepo) Update(ctx context.Context, item *items.Item) error {
	set := postgres.Pick(postgres.StructToMap(item), r.Columns(), ledgerColumns...)
	set["updated_at"] = r.now().UTC()
	return r.UpdateColumns(ctx, item.Code, set)
}

// Delete implements items.Repository.
func (r *ItemRepo) Delete(ctx context.Context, code string) error {
	return r.DeleteByKey(ctx, code)
}

// List implements items.Repository.
func (r *ItemRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*items.Item], error) {
	return r.KeyedRepo.List(ctx, filter)
}
