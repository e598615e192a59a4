package inward

import (
	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
)

// WeightedAverage blends the current stock with an accepted receipt:
//
//	new_qty      = qty + accepted
//	new_avg_cost = (qty*avgCost + accepted*price) / new_qty
//
// A resulting quantity of zero leaves the average undefined and is reported
// as an integrity error.
func WeightedAverage(qty int64, avgCost types.Money, accepted int64, price types.Money) (int64, types.Money, error) {
	newQty := qty + accepted
	if newQty == 0 {
		return 0, types.Zero(), apperror.NewIntegrity("resulting quantity is zero, average cost is undefined").
			WithDetail("qty", qty).
			WithDetail("acceptqty", accepted)
	}

	oldValue := types.Extend(avgCost, qty)
	addedValue := types.Extend(price, accepted)
	newAvg := oldValue.Add(addedValue).Div(types.FromQuantity(newQty))

	return newQty, types.RoundCost(newAvg), nil
}
