// Package reports provides read-only projections over the item ledger and
// movement history.
package reports

import (
	"fmt"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/outward"
)

// MovementKind selects inward or outward movements.
type MovementKind string

const (
	KindInward  MovementKind = "inward"
	KindOutward MovementKind = "outward"
)

// ParseMovementKind validates a movement kind.
func ParseMovementKind(s string) (MovementKind, error) {
	switch MovementKind(s) {
	case KindInward, KindOutward:
		return MovementKind(s), nil
	}
	return "", apperror.NewValidation(fmt.Sprintf("unknown movement kind %q", s)).
		WithDetail("field", "kind").
		WithDetail("allowed", []string{string(KindInward), string(KindOutward)})
}

// MovementList is one page of movements of a single kind.
type MovementList struct {
	Kind       MovementKind      `json:"kind"`
	Inward     []*inward.Receipt `json:"inward,omitempty"`
	Outward    []*outward.Issue  `json:"outward,omitempty"`
	TotalCount int64             `json:"totalCount"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}

// StockOverview summarises the item catalog.
type StockOverview struct {
	TotalItems    int64 `json:"totalItems"`
	LowStockItems int64 `json:"lowStockItems"`
	ExpiredItems  int64 `json:"expiredItems"`
}

// SalesSummary aggregates all issues.
type SalesSummary struct {
	TotalSales          types.Money `db:"total_sales" json:"totalSales"`
	TotalProfit         types.Money `db:"total_profit" json:"totalProfit"`
	AvgProfitPercentage types.Money `db:"avg_profit_percentage" json:"avgProfitPercentage"`
	IssueCount          int64       `db:"issue_count" json:"issueCount"`
}

// TopSellingItem is an item ranked by issued quantity.
type TopSellingItem struct {
	ItemCode    string `db:"item_code" json:"itemCode"`
	ItemName    string `db:"item_name" json:"itemName"`
	TotalIssued int64  `db:"total_issued" json:"totalIssued"`
}

// RecentMovement is a movement of either kind in a combined timeline.
type RecentMovement struct {
	Kind      MovementKind `db:"kind" json:"kind"`
	UUID      string       `db:"uuid" json:"uuid"`
	ItemCode  string       `db:"item_code" json:"itemCode"`
	Quantity  int64        `db:"quantity" json:"quantity"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
}

// Dashboard combines every summary report.
type Dashboard struct {
	Overview        *StockOverview   `json:"overview"`
	Sales           *SalesSummary    `json:"sales"`
	TopSelling      []TopSellingItem `json:"topSelling"`
	RecentMovements []RecentMovement `json:"recentMovements"`
	LowStock        []*items.Item    `json:"lowStock"`
	ProfitsTotal    types.Money      `json:"profitsTotal"`
	AverageCost     types.Money      `json:"averageCost"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// ProfitsTotal is the sum of stored profits.
type ProfitsTotal struct {
	TotalProfits types.Money `json:"totalProfits"`
}

// AverageCost is the mean of item average costs.
type AverageCost struct {
	AvgCost types.Money `json:"avgCost"`
}
