package inward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
)

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name     string
		qty      int64
		avg      string
		accepted int64
		price    string
		wantQty  int64
		wantAvg  string
	}{
		{"first receipt", 0, "0", 10, "5", 10, "5"},
		{"blended receipt", 10, "5", 10, "15", 20, "10"},
		{"zero accepted keeps cost", 8, "3", 0, "100", 8, "3"},
		{"fractional result", 3, "1", 1, "2", 4, "1.25"},
		{"repeating fraction rounds", 1, "0", 2, "1", 3, "0.666666666667"},
		{"negative stock recovers", -2, "4", 4, "6", 2, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, avg, err := WeightedAverage(tt.qty, types.MustMoney(tt.avg), tt.accepted, types.MustMoney(tt.price))
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, qty)
			assert.True(t, types.MustMoney(tt.wantAvg).Equal(avg), "avg = %s, want %s", avg, tt.wantAvg)
		})
	}
}

func TestWeightedAverage_ZeroResultingQuantity(t *testing.T) {
	for _, tc := range []struct{ qty, accepted int64 }{{0, 0}, {-5, 5}} {
		_, _, err := WeightedAverage(tc.qty, types.MustMoney("4"), tc.accepted, types.MustMoney("1"))
		require.Error(t, err)
		assert.True(t, apperror.IsIntegrity(err))
	}
}

// The blended cost always lies between the old cost and the receipt price
// when both quantities are positive.
func TestWeightedAverage_BetweenInputs(t *testing.T) {
	for qty := int64(1); qty <= 20; qty += 3 {
		for accepted := int64(1); accepted <= 20; accepted += 4 {
			oldAvg := types.MustMoney("7.5")
			price := types.MustMoney("12.25")

			newQty, avg, err := WeightedAverage(qty, oldAvg, accepted, price)
			require.NoError(t, err)
			assert.Equal(t, qty+accepted, newQty)
			assert.True(t, avg.GreaterThanOrEqual(oldAvg) && avg.LessThanOrEqual(price),
				"qty=%d accepted=%d avg=%s", qty, accepted, avg)

			want := (7.5*float64(qty) + 12.25*float64(accepted)) / float64(qty+accepted)
			assert.InDelta(t, want, avg.InexactFloat64(), 1e-6)
		}
	}
}

func TestValidateYear(t *testing.T) {
	now := mustTime(t, "2024-06-01")

	assert.NoError(t, validateYear(0, now))
	assert.NoError(t, validateYear(1900, now))
	assert.NoError(t, validateYear(2029, now))

	for _, year := range []int{1899, 2030, -1} {
		err := validateYear(year, now)
		require.Error(t, err, "year %d", year)
		assert.True(t, apperror.IsValidation(err))
	}
}
