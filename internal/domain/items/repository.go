package items

import (
	"context"

	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
)

// LedgerStore is the storage surface the Ledger needs.
type LedgerStore interface {
	// GetByCode returns the item or a NotFound error.
	GetByCode(ctx context.Context, code string) (*Item, error)

	// GetByCodeForUpdate returns the item and locks its row until the
	// surrounding transaction ends.
	GetByCodeForUpdate(ctx context.Context, code string) (*Item, error)

	// UpdateStock overwrites quantity and average cost.
	// Returns NotFound when no row matches.
	UpdateStock(ctx context.Context, code string, qty int64, avgCost types.Money) error
}

// Repository defines persistence for items.
type Repository interface {
	LedgerStore

	// Create inserts a new item; a duplicate code yields a Duplicate error.
	Create(ctx context.Context, item *Item) error

	// Update overwrites descriptive fields only. Quantity and average cost are untouched.
	Update(ctx context.Context, item *Item) error

	// Delete removes the item. Movements referencing it are left in place.
	Delete(ctx context.Context, code string) error

	// ExistsByCode checks for an item with the given code.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// List returns items matching the filter (Search matches name or code).
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Item], error)
}
