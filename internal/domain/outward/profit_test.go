package outward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
)

func TestProfit(t *testing.T) {
	tests := []struct {
		name        string
		price, avg  string
		qty         int64
		wantProfit  string
		wantPercent string
	}{
		{"rounded example", "15", "10", 3, "15", "50"},
		{"zero cost has no percentage", "4", "0", 5, "20", "0"},
		{"loss", "8", "10", 3, "-6", "-20"},
		{"fraction rounds up", "10.1", "10", 1, "1", "10"},
		{"percentage rounds up", "10", "3", 1, "7", "234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profit, pct := Profit(types.MustMoney(tt.price), types.MustMoney(tt.avg), tt.qty)
			assert.True(t, types.MustMoney(tt.wantProfit).Equal(profit), "profit = %s", profit)
			assert.True(t, types.MustMoney(tt.wantPercent).Equal(pct), "percentage = %s", pct)
		})
	}
}

func TestInputValidate(t *testing.T) {
	valid := func() Input {
		qty := int64(3)
		sale := types.MustMoney("3")
		price := types.MustMoney("15")
		return Input{ItemCode: "P-1", IssueQty: &qty, SaleValue: &sale, UnitPrice: &price}
	}

	in := valid()
	require.NoError(t, in.Validate())

	zero := types.Zero()
	negQty := int64(-1)
	tests := []struct {
		name  string
		mut   func(*Input)
		field string
	}{
		{"missing item", func(in *Input) { in.ItemCode = "" }, "itemcode"},
		{"missing qty", func(in *Input) { in.IssueQty = nil }, "issueqty"},
		{"negative qty", func(in *Input) { in.IssueQty = &negQty }, "issueqty"},
		{"missing sale value", func(in *Input) { in.SaleValue = nil }, "salevalue"},
		{"zero sale value", func(in *Input) { in.SaleValue = &zero }, "salevalue"},
		{"zero price", func(in *Input) { in.UnitPrice = &zero }, "unitprice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mut(&in)
			err := in.Validate()
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}
