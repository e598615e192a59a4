// Package report_repo provides the PostgreSQL aggregate queries behind reports.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/reports"
	"robotpacc/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm      *postgres.TxManager
	builder  squirrel.StatementBuilderType
	itemCols []string
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:      txm,
		builder:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		itemCols: postgres.ExtractDBColumns[items.Item](),
	}
}

func (r *ReportRepo) lowStockQuery() squirrel.SelectBuilder {
	return r.builder.
		Select(r.itemCols...).
		From("items").
		Where("qty <= min_stock").
		OrderBy("item_name ASC")
}

// ListLowStock implements reports.Repository.
func (r *ReportRepo) ListLowStock(ctx context.Context) ([]*items.Item, error) {
	return r.selectItems(ctx, r.lowStockQuery(), "low stock")
}

// ListItemsWithExpiry implements reports.Repository.
func (r *ReportRepo) ListItemsWithExpiry(ctx context.Context) ([]*items.Item, error) {
	q := r.builder.
		Select(r.itemCols...).
		From("items").
		Where(squirrel.NotEq{"expiry": ""}).
		OrderBy("item_code ASC")
	return r.selectItems(ctx, q, "items with expiry")
}

func (r *ReportRepo) selectItems(ctx context.Context, q squirrel.SelectBuilder, op string) ([]*items.Item, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}
	out := make([]*items.Item, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase(op, err)
	}
	return out, nil
}

// CountItems implements reports.Repository.
func (r *ReportRepo) CountItems(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM items", "count items")
}

// CountLowStock implements reports.Repository.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM items WHERE qty <= min_stock", "count low stock")
}

func (r *ReportRepo) count(ctx context.Context, sql, op string) (int64, error) {
	var n int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql).Scan(&n); err != nil {
		return 0, apperror.NewDatabase(op, err)
	}
	return n, nil
}

// SalesSummary implements reports.Repository.
func (r *ReportRepo) SalesSummary(ctx context.Context) (*reports.SalesSummary, error) {
	const q = `
		SELECT COALESCE(SUM(sale_value), 0)        AS total_sales,
		       COALESCE(SUM(profit), 0)            AS total_profit,
		       COALESCE(AVG(profit_percentage), 0) AS avg_profit_percentage,
		       COUNT(*)                            AS issue_count
		FROM outward_movements`

	var sum reports.SalesSummary
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &sum, q); err != nil {
		return nil, apperror.NewDatabase("sales summary", err)
	}
	sum.AvgProfitPercentage = types.RoundReport(sum.AvgProfitPercentage)
	return &sum, nil
}

// TopSelling implements reports.Repository. Issues whose item was deleted
// are still ranked, with an empty name.
func (r *ReportRepo) TopSelling(ctx context.Context, limit int) ([]reports.TopSellingItem, error) {
	const q = `
		SELECT o.item_code,
		       COALESCE(MAX(i.item_name), '') AS item_name,
		       SUM(o.issue_qty)               AS total_issued
		FROM outward_movements o
		LEFT JOIN items i ON i.item_code = o.item_code
		GROUP BY o.item_code
		ORDER BY total_issued DESC, o.item_code ASC
		LIMIT $1`

	out := make([]reports.TopSellingItem, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, q, limit); err != nil {
		return nil, apperror.NewDatabase("top selling", err)
	}
	return out, nil
}

// RecentMovements implements reports.Repository. Inward quantities are the
// accepted quantity, outward the issued quantity.
func (r *ReportRepo) RecentMovements(ctx context.Context, limit int) ([]reports.RecentMovement, error) {
	const q = `
		SELECT kind, uuid, item_code, quantity, created_at FROM (
			SELECT 'inward' AS kind, uuid, item_code, accepted_qty AS quantity, created_at
			FROM inward_movements
			UNION ALL
			SELECT 'outward' AS kind, uuid, item_code, issue_qty AS quantity, created_at
			FROM outward_movements
		) m
		ORDER BY created_at DESC, uuid DESC
		LIMIT $1`

	out := make([]reports.RecentMovement, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, q, limit); err != nil {
		return nil, apperror.NewDatabase("recent movements", err)
	}
	return out, nil
}

// ProfitsTotal implements reports.Repository.
func (r *ReportRepo) ProfitsTotal(ctx context.Context) (types.Money, error) {
	return r.money(ctx, "SELECT COALESCE(SUM(profit), 0) FROM outward_movements", "profits total")
}

// AverageCost implements reports.Repository.
func (r *ReportRepo) AverageCost(ctx context.Context) (types.Money, error) {
	avg, err := r.money(ctx, "SELECT COALESCE(AVG(avg_cost), 0) FROM items", "average cost")
	if err != nil {
		return avg, err
	}
	return types.RoundReport(avg), nil
}

func (r *ReportRepo) money(ctx context.Context, sql, op string) (types.Money, error) {
	var v types.Money
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql).Scan(&v); err != nil {
		return types.Zero(), apperror.NewDatabase(op, err)
	}
	return v, nil
}
