package outward_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/domaintest"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/outward"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func issue(uuid string, qty int64, saleValue, price string) outward.Input {
	return outward.Input{
		ItemCode:      "P-1",
		CustomerPhone: "555-0300",
		UUID:          uuid,
		IssueQty:      domaintest.Int64(qty),
		SaleValue:     domaintest.Money(saleValue),
		UnitPrice:     domaintest.Money(price),
	}
}

func TestProcess_ProfitAndQuantity(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 10, "10")
	ctx := context.Background()

	res, err := env.Outward.Process(ctx, issue("OUT-1", 3, "3", "15"))
	require.NoError(t, err)

	assert.True(t, types.MustMoney("15").Equal(res.Profit))
	assert.True(t, types.MustMoney("50").Equal(res.ProfitPercentage))
	assert.Equal(t, int64(10), res.PreviousQty)
	assert.Equal(t, int64(7), res.UpdatedQty)

	item, err := env.Items.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.Quantity)
	assert.True(t, types.MustMoney("10").Equal(item.AvgCost), "issues keep average cost")

	stored, err := env.Outward.Get(ctx, "OUT-1")
	require.NoError(t, err)
	assert.True(t, types.MustMoney("15").Equal(stored.Profit))
	assert.Equal(t, "555-0300", stored.CustomerPhone)
}

func TestProcess_OversellGuard(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 5, "10")
	ctx := context.Background()

	_, err := env.Outward.Process(ctx, issue("OUT-1", 1, "6", "15"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	item, err := env.Items.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity)

	_, err = env.Outward.Get(ctx, "OUT-1")
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, env.Store.AuditEntries())
}

func TestProcess_IssueQuantityMayExceedStock(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 5, "2")

	res, err := env.Outward.Process(context.Background(), issue("OUT-1", 8, "5", "3"))
	require.NoError(t, err)
	assert.Equal(t, int64(-3), res.UpdatedQty)
}

func TestProcess_UnknownItemAndReusedUUID(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 10, "1")
	ctx := context.Background()

	missing := issue("OUT-1", 1, "1", "2")
	missing.ItemCode = "NOPE"
	_, err := env.Outward.Process(ctx, missing)
	assert.True(t, apperror.IsNotFound(err))

	_, err = env.Outward.Process(ctx, issue("OUT-1", 1, "1", "2"))
	require.NoError(t, err)
	_, err = env.Outward.Process(ctx, issue("OUT-1", 1, "1", "2"))
	assert.True(t, apperror.IsConflict(err))

	item, err := env.Items.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), item.Quantity)
}

func TestProcess_UnknownCustomerAccepted(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 10, "1")

	in := issue("OUT-1", 1, "1", "2")
	in.CustomerPhone = "not-registered"
	_, err := env.Outward.Process(context.Background(), in)
	assert.NoError(t, err)
}

func TestProcess_RecordFailureRollsBack(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 10, "1")
	env.Store.FailOn("audit.Record", errors.New("audit unavailable"))
	ctx := context.Background()

	_, err := env.Outward.Process(ctx, issue("OUT-1", 4, "1", "2"))
	require.Error(t, err)

	item, err := env.Items.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.Quantity)
	_, err = env.Outward.Get(ctx, "OUT-1")
	assert.True(t, apperror.IsNotFound(err))
}

// Final quantity equals the opening quantity plus accepted receipts minus issues.
func TestQuantityConservation(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 3, "2")
	env.PutSupplier("555-0100", "P-1")
	ctx := context.Background()

	receipts := []int64{5, 7, 2}
	issues := []int64{4, 1, 6}
	var received, issued int64

	for i := range receipts {
		_, err := env.Inward.Process(ctx, inward.Input{
			ItemCode:      "P-1",
			SupplierPhone: "555-0100",
			BuildQty:      domaintest.Int64(receipts[i]),
			ReceivedQty:   domaintest.Int64(receipts[i]),
			AcceptedQty:   domaintest.Int64(receipts[i]),
			RejectedQty:   domaintest.Int64(0),
			UnitPrice:     domaintest.Money("4"),
		})
		require.NoError(t, err)
		received += receipts[i]

		_, err = env.Outward.Process(ctx, issue("", issues[i], "1", "6"))
		require.NoError(t, err)
		issued += issues[i]
	}

	item, err := env.Items.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, 3+received-issued, item.Quantity)

	list, err := env.Outward.List(ctx, domain.ListFilter{ItemCode: "P-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(len(issues)), list.TotalCount)
}

func TestUpdateAndDelete(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 10, "10")
	ctx := context.Background()

	_, err := env.Outward.Process(ctx, issue("OUT-1", 3, "3", "15"))
	require.NoError(t, err)

	ref := "INV-42"
	updated, err := env.Outward.Update(ctx, "OUT-1", outward.Patch{Reference: &ref})
	require.NoError(t, err)
	assert.Equal(t, "INV-42", updated.Reference)
	assert.True(t, types.MustMoney("15").Equal(updated.Profit))

	neg := types.MustMoney("-1")
	_, err = env.Outward.Update(ctx, "OUT-1", outward.Patch{PartsAvgTotal: &neg})
	assert.True(t, apperror.IsValidation(err))

	require.NoError(t, env.Outward.Delete(ctx, "OUT-1"))
	item, err := env.Items.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.Quantity, "deleting an issue does not restore stock")
}

type countingNumbers struct {
	n        int
	observed []string
}

func (c *countingNumbers) Observe(ctx context.Context, prefix, reference string) error {
	c.observed = append(c.observed, reference)
	return nil
}

func (c *countingNumbers) Next(ctx context.Context, prefix string, period time.Time) (string, error) {
	c.n++
	return fmt.Sprintf("%s-%d-%05d", prefix, period.Year(), c.n), nil
}

func TestProcess_GeneratesMissingReference(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 10, "10")
	numbers := &countingNumbers{}
	env.Outward.WithReferenceNumbers(numbers)
	ctx := context.Background()

	res, err := env.Outward.Process(ctx, issue("OUT-1", 1, "1", "12"))
	require.NoError(t, err)
	assert.Equal(t, "OUT-2024-00001", res.Issue.Reference)

	in := issue("OUT-2", 1, "1", "12")
	in.Reference = "INV-77"
	res, err = env.Outward.Process(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "INV-77", res.Issue.Reference)
	assert.Equal(t, 1, numbers.n)

	// A rejected issue draws no number.
	_, err = env.Outward.Process(ctx, issue("OUT-3", 1, "500", "12"))
	require.Error(t, err)
	assert.Equal(t, 1, numbers.n)
	assert.Equal(t, []string{"INV-77"}, numbers.observed)
}

func TestProcess_ObservesSuppliedReference(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 10, "10")
	numbers := &countingNumbers{}
	env.Outward.WithReferenceNumbers(numbers)
	ctx := context.Background()

	in := issue("OUT-1", 1, "1", "12")
	in.Reference = "OUT-2024-00009"
	res, err := env.Outward.Process(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "OUT-2024-00009", res.Issue.Reference)
	assert.Equal(t, []string{"OUT-2024-00009"}, numbers.observed)
	assert.Zero(t, numbers.n)

	// Rejected issues are not observed.
	in = issue("OUT-2", 1, "500", "12")
	in.Reference = "OUT-2024-00500"
	_, err = env.Outward.Process(ctx, in)
	require.Error(t, err)
	assert.Len(t, numbers.observed, 1)
}
