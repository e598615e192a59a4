package reports

import (
	"context"

	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/outward"
)

// Repository runs the aggregate queries.
type Repository interface {
	// ListLowStock returns items whose quantity is at or below min stock.
	ListLowStock(ctx context.Context) ([]*items.Item, error)

	// ListItemsWithExpiry returns every item with a non-empty expiry text.
	ListItemsWithExpiry(ctx context.Context) ([]*items.Item, error)

	CountItems(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	SalesSummary(ctx context.Context) (*SalesSummary, error)
	TopSelling(ctx context.Context, limit int) ([]TopSellingItem, error)
	RecentMovements(ctx context.Context, limit int) ([]RecentMovement, error)

	// ProfitsTotal is the sum of stored profits over all issues.
	ProfitsTotal(ctx context.Context) (types.Money, error)

	// AverageCost is the mean of item average costs.
	AverageCost(ctx context.Context) (types.Money, error)
}

// ItemReader reads one item.
type ItemReader interface {
	Get(ctx context.Context, code string) (*items.Item, error)
}

// InwardLister lists receipts.
type InwardLister interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*inward.Receipt], error)
}

// OutwardLister lists issues.
type OutwardLister interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*outward.Issue], error)
}
