package dto

import (
	"time"

	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/reports"
)

// LowStockResponse wraps the low stock listing.
type LowStockResponse struct {
	LowStockItems []ItemResponse `json:"lowStockItems"`
}

// MovementListResponse is one page of movements of a single kind.
type MovementListResponse struct {
	Kind       reports.MovementKind `json:"kind"`
	Inward     []InwardResponse     `json:"inward,omitempty"`
	Outward    []OutwardResponse    `json:"outward,omitempty"`
	TotalCount int64                `json:"totalCount"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

// FromMovementList converts a report page to DTO.
func FromMovementList(l *reports.MovementList) MovementListResponse {
	resp := MovementListResponse{
		Kind:       l.Kind,
		TotalCount: l.TotalCount,
		Limit:      l.Limit,
		Offset:     l.Offset,
	}
	for _, r := range l.Inward {
		resp.Inward = append(resp.Inward, FromReceipt(r))
	}
	for _, i := range l.Outward {
		resp.Outward = append(resp.Outward, FromIssue(i))
	}
	return resp
}

// DashboardResponse combines every summary report.
type DashboardResponse struct {
	Overview        *reports.StockOverview   `json:"overview"`
	Sales           *reports.SalesSummary    `json:"sales"`
	TopSelling      []reports.TopSellingItem `json:"topSelling"`
	RecentMovements []reports.RecentMovement `json:"recentMovements"`
	LowStock        []ItemResponse           `json:"lowStock"`
	ProfitsTotal    types.Money              `json:"profitsTotal"`
	AverageCost     types.Money              `json:"averageCost"`
	GeneratedAt     time.Time                `json:"generatedAt"`
}

// FromDashboard converts the dashboard to DTO.
func FromDashboard(d *reports.Dashboard) DashboardResponse {
	return DashboardResponse{
		Overview:        d.Overview,
		Sales:           d.Sales,
		TopSelling:      d.TopSelling,
		RecentMovements: d.RecentMovements,
		LowStock:        FromItems(d.LowStock),
		ProfitsTotal:    d.ProfitsTotal,
		AverageCost:     d.AverageCost,
		GeneratedAt:     d.GeneratedAt,
	}
}
