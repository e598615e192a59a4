// Package items provides the stock item catalog and the item ledger.
package items

import (
	"fmt"
	"strings"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
)

// Item is a stock item together with its ledger state.
// Quantity and AvgCost change only through the Ledger.
type Item struct {
	Code         string      `db:"item_code" json:"itemCode"`
	Name         string      `db:"item_name" json:"itemName"`
	Description  string      `db:"item_desc" json:"itemDesc"`
	UsedFor      string      `db:"item_used" json:"itemUsed"`
	Quantity     int64       `db:"qty" json:"qty"`
	PurchaseDate string      `db:"purchase_date" json:"purchaseDate"`
	Expiry       string      `db:"expiry" json:"expiry"`
	AvgCost      types.Money `db:"avg_cost" json:"avgCost"`
	MinStock     int64       `db:"min_stock" json:"minStock"`
	MaxStock     int64       `db:"max_stock" json:"maxStock"`
	LatestPrice  types.Money `db:"latest_price" json:"latestPrice"`
	LowestPrice  types.Money `db:"lowest_price" json:"lowestPrice"`
	HighestPrice types.Money `db:"highest_price" json:"highestPrice"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`
}

// Validate checks descriptive fields and the initial ledger values.
func (i *Item) Validate() error {
	i.Code = strings.TrimSpace(i.Code)
	i.Name = strings.TrimSpace(i.Name)

	if i.Code == "" {
		return apperror.NewValidation("item code is required").
			WithDetail("field", "itemcode")
	}
	if i.Name == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "itemname")
	}
	if strings.TrimSpace(i.PurchaseDate) == "" {
		return apperror.NewValidation("purchase date is required").
			WithDetail("field", "dtpur")
	}
	if _, err := ParseDate(i.Expiry); err != nil {
		return apperror.NewValidation("expiry date is not a valid date").
			WithDetail("field", "expiry").
			WithDetail("value", i.Expiry)
	}
	if i.AvgCost.IsNegative() {
		return apperror.NewValidation("average cost must not be negative").
			WithDetail("field", "avgcost")
	}
	if i.MinStock < 0 || i.MaxStock < 0 {
		return apperror.NewValidation("stock thresholds must not be negative").
			WithDetail("field", "minstock")
	}
	if i.MaxStock > 0 && i.MinStock > i.MaxStock {
		return apperror.NewValidation("minimum stock exceeds maximum stock").
			WithDetail("minstock", i.MinStock).
			WithDetail("maxstock", i.MaxStock)
	}
	for field, price := range map[string]types.Money{
		"latestprice": i.LatestPrice,
		"lowest":      i.LowestPrice,
		"highest":     i.HighestPrice,
	} {
		if price.IsNegative() {
			return apperror.NewValidation("price must not be negative").
				WithDetail("field", field)
		}
	}
	return nil
}

// IsLowStock reports whether quantity is at or below the minimum threshold.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// Snapshot returns the audited view of the item.
func (i *Item) Snapshot() map[string]any {
	return map[string]any{
		"itemname":    i.Name,
		"itemdesc":    i.Description,
		"itemused":    i.UsedFor,
		"dtpur":       i.PurchaseDate,
		"expiry":      i.Expiry,
		"minstock":    i.MinStock,
		"maxstock":    i.MaxStock,
		"latestprice": i.LatestPrice.String(),
		"lowest":      i.LowestPrice.String(),
		"highest":     i.HighestPrice.String(),
	}
}

// dateLayouts lists accepted textual date forms, month-first first.
var dateLayouts = []string{
	"01-02-2006",
	"2006-01-02",
	"01/02/2006",
	"1-2-2006",
	"1/2/2006",
}

// ParseDate parses a textual item date (expiry, purchase) into a calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// IsExpired reports whether the item's expiry day is strictly before today.
// Items with an unparseable expiry are never reported as expired.
func (i *Item) IsExpired(now time.Time) (bool, error) {
	exp, err := ParseDate(i.Expiry)
	if err != nil {
		return false, err
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return exp.Before(today), nil
}
