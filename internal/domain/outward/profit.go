package outward

import (
	"robotpacc/internal/core/types"
)

// Profit computes the realised profit of an issue, rounded up to a whole unit:
//
//	profit     = ceil(unitPrice*qty - avgCost*qty)
//	percentage = ceil(profit / (avgCost*qty) * 100), or 0 when avgCost is 0
func Profit(unitPrice, avgCost types.Money, qty int64) (profit, percentage types.Money) {
	revenue := types.Extend(unitPrice, qty)
	cost := types.Extend(avgCost, qty)
	profit = revenue.Sub(cost).Ceil()

	if avgCost.IsZero() || cost.IsZero() {
		return profit, types.Zero()
	}
	// Multiply before dividing so exact ratios stay exact.
	percentage = profit.Mul(types.Hundred).Div(cost).Ceil()
	return profit, percentage
}
