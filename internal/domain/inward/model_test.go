package inward

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return v
}

func ptr[T any](v T) *T { return &v }

func validInput() Input {
	price := types.MustMoney("5")
	return Input{
		ItemCode:      " P-1 ",
		SupplierPhone: "555-0100",
		BuildQty:      ptr(int64(10)),
		ReceivedQty:   ptr(int64(10)),
		AcceptedQty:   ptr(int64(10)),
		RejectedQty:   ptr(int64(0)),
		UnitPrice:     &price,
	}
}

func TestInputValidate(t *testing.T) {
	now := mustTime(t, "2024-06-01")

	in := validInput()
	require.NoError(t, in.Validate(now))
	assert.Equal(t, "P-1", in.ItemCode)

	tests := []struct {
		name  string
		mut   func(*Input)
		field string
	}{
		{"missing item", func(in *Input) { in.ItemCode = "" }, "itemcode"},
		{"missing supplier", func(in *Input) { in.SupplierPhone = " " }, "phone"},
		{"missing accepted", func(in *Input) { in.AcceptedQty = nil }, "acceptqty"},
		{"negative accepted", func(in *Input) { in.AcceptedQty = ptr(int64(-1)) }, "acceptqty"},
		{"negative build", func(in *Input) { in.BuildQty = ptr(int64(-3)) }, "buildqty"},
		{"missing rejected", func(in *Input) { in.RejectedQty = nil }, "rejectqty"},
		{"missing price", func(in *Input) { in.UnitPrice = nil }, "additionalprice"},
		{"negative price", func(in *Input) { p := types.MustMoney("-1"); in.UnitPrice = &p }, "additionalprice"},
		{"future year", func(in *Input) { in.YearOfManufacture = 2100 }, "yearmanufactor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mut(&in)
			err := in.Validate(now)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestInputValidate_NegativeRejectedAllowed(t *testing.T) {
	in := validInput()
	in.RejectedQty = ptr(int64(-2))
	assert.NoError(t, in.Validate(mustTime(t, "2024-06-01")))
}

func TestToReceipt_GeneratesKey(t *testing.T) {
	in := validInput()
	at := mustTime(t, "2024-06-01")

	r := in.toReceipt(at)
	assert.NotEmpty(t, r.UUID)
	assert.Equal(t, at, r.CreatedAt)
	assert.Equal(t, int64(10), r.AcceptedQty)

	in.UUID = "IN-7"
	assert.Equal(t, "IN-7", in.toReceipt(at).UUID)
}
