package domaintest

import (
	"context"
	"sort"

	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/reports"
)

// ReportRepo implements reports.Repository over the in-memory tables.
type ReportRepo struct{ s *Store }

var _ reports.Repository = (*ReportRepo)(nil)

func (r *ReportRepo) ListLowStock(ctx context.Context) ([]*items.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*items.Item, 0)
	for _, it := range r.s.items {
		it := it
		if it.IsLowStock() {
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ReportRepo) ListItemsWithExpiry(ctx context.Context) ([]*items.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*items.Item, 0)
	for _, it := range r.s.items {
		it := it
		if it.Expiry != "" {
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *ReportRepo) CountItems(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.items)), nil
}

func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	low, _ := r.ListLowStock(ctx)
	return int64(len(low)), nil
}

func (r *ReportRepo) SalesSummary(ctx context.Context) (*reports.SalesSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := &reports.SalesSummary{
		TotalSales:          types.Zero(),
		TotalProfit:         types.Zero(),
		AvgProfitPercentage: types.Zero(),
	}
	pct := types.Zero()
	for _, i := range r.s.outward {
		sum.TotalSales = sum.TotalSales.Add(i.SaleValue)
		sum.TotalProfit = sum.TotalProfit.Add(i.Profit)
		pct = pct.Add(i.ProfitPercentage)
		sum.IssueCount++
	}
	if sum.IssueCount > 0 {
		sum.AvgProfitPercentage = types.RoundReport(pct.Div(types.FromQuantity(sum.IssueCount)))
	}
	return sum, nil
}

func (r *ReportRepo) TopSelling(ctx context.Context, limit int) ([]reports.TopSellingItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := make(map[string]int64)
	for _, i := range r.s.outward {
		totals[i.ItemCode] += i.IssueQty
	}
	out := make([]reports.TopSellingItem, 0, len(totals))
	for code, qty := range totals {
		out = append(out, reports.TopSellingItem{
			ItemCode:    code,
			ItemName:    r.s.items[code].Name,
			TotalIssued: qty,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalIssued != out[j].TotalIssued {
			return out[i].TotalIssued > out[j].TotalIssued
		}
		return out[i].ItemCode < out[j].ItemCode
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReportRepo) RecentMovements(ctx context.Context, limit int) ([]reports.RecentMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]reports.RecentMovement, 0, len(r.s.inward)+len(r.s.outward))
	for _, rec := range r.s.inward {
		out = append(out, reports.RecentMovement{
			Kind: reports.KindInward, UUID: rec.UUID, ItemCode: rec.ItemCode,
			Quantity: rec.AcceptedQty, CreatedAt: rec.CreatedAt,
		})
	}
	for _, i := range r.s.outward {
		out = append(out, reports.RecentMovement{
			Kind: reports.KindOutward, UUID: i.UUID, ItemCode: i.ItemCode,
			Quantity: i.IssueQty, CreatedAt: i.CreatedAt,
		})
	}
	sort.Slice(out, func(a, b int) bool { return newer(out[a].CreatedAt, out[b].CreatedAt, out[a].UUID, out[b].UUID) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReportRepo) ProfitsTotal(ctx context.Context) (types.Money, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := types.Zero()
	for _, i := range r.s.outward {
		total = total.Add(i.Profit)
	}
	return total, nil
}

func (r *ReportRepo) AverageCost(ctx context.Context) (types.Money, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.items) == 0 {
		return types.Zero(), nil
	}
	total := types.Zero()
	for _, it := range r.s.items {
		total = total.Add(it.AvgCost)
	}
	return types.RoundReport(total.Div(types.FromQuantity(int64(len(r.s.items))))), nil
}
