// Package types provides monetary helpers shared by the ledger and processors.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Hundred is the percentage multiplier.
var Hundred = decimal.NewFromInt(100)

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// FromQuantity converts an integer stock quantity to Money for arithmetic.
func FromQuantity(qty int64) Money {
	return decimal.NewFromInt(qty)
}

// Extend returns unitPrice * qty.
func Extend(unitPrice Money, qty int64) Money {
	return unitPrice.Mul(FromQuantity(qty))
}

// CostScale is the number of fractional digits kept for average unit cost.
// Each receipt rounds once, so after n receipts the stored average is within
// n * CostTolerance of the exact quantity-weighted mean.
const CostScale = 12

// CostTolerance is half a unit in the last kept digit of a cost.
var CostTolerance = decimal.New(5, -(CostScale + 1))

// ReportScale is the number of fractional digits shown for averages in
// reports.
const ReportScale = 6

// RoundCost rounds an average unit cost to CostScale digits.
func RoundCost(cost Money) Money {
	return cost.Round(CostScale)
}

// RoundReport rounds a derived average to ReportScale digits.
func RoundReport(v Money) Money {
	return v.Round(ReportScale)
}
