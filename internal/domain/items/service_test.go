package items_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/audit"
	"robotpacc/internal/domain/domaintest"
	"robotpacc/internal/domain/items"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newItem(code, name string) *items.Item {
	return &items.Item{
		Code:         code,
		Name:         name,
		Quantity:     4,
		AvgCost:      types.MustMoney("2.5"),
		PurchaseDate: "01-15-2024",
		Expiry:       "12-31-2026",
	}
}

func TestCreateAndGet(t *testing.T) {
	env := domaintest.NewEnv(now)
	ctx := context.Background()

	require.NoError(t, env.Items.Create(ctx, newItem("P-1", "Hex bolt")))

	got, err := env.Items.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, "Hex bolt", got.Name)
	assert.Equal(t, int64(4), got.Quantity)
	assert.Equal(t, now, got.CreatedAt)

	err = env.Items.Create(ctx, newItem("P-1", "Other"))
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	_, err = env.Items.Get(ctx, "missing")
	assert.True(t, apperror.IsNotFound(err))

	_, err = env.Items.Get(ctx, " ")
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateKeepsLedgerColumns(t *testing.T) {
	env := domaintest.NewEnv(now)
	ctx := context.Background()
	require.NoError(t, env.Items.Create(ctx, newItem("P-1", "Hex bolt")))

	updated, err := env.Items.Update(ctx, "P-1", func(it *items.Item) {
		it.Name = "Hex bolt M8"
		it.Quantity = 999
		it.AvgCost = types.MustMoney("100")
	})
	require.NoError(t, err)
	assert.Equal(t, "Hex bolt M8", updated.Name)
	assert.Equal(t, int64(4), updated.Quantity)
	assert.True(t, types.MustMoney("2.5").Equal(updated.AvgCost))

	history, err := env.Items.History(ctx, "P-1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, audit.ActionUpdate, history[0].Action)
	assert.Equal(t, audit.ActionCreate, history[1].Action)
}

func TestOverwriteStock(t *testing.T) {
	env := domaintest.NewEnv(now)
	ctx := context.Background()
	require.NoError(t, env.Items.Create(ctx, newItem("P-1", "Hex bolt")))

	it, err := env.Items.OverwriteStock(ctx, "P-1", 12, types.MustMoney("3.12345678901234"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), it.Quantity)
	assert.True(t, types.MustMoney("3.123456789012").Equal(it.AvgCost), "cost = %s", it.AvgCost)

	_, err = env.Items.OverwriteStock(ctx, "P-1", 1, types.MustMoney("-1"))
	require.Error(t, err)
	assert.True(t, apperror.IsIntegrity(err))

	stored, err := env.Items.Get(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), stored.Quantity)

	_, err = env.Items.OverwriteStock(ctx, "missing", 1, types.Zero())
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteLeavesHistory(t *testing.T) {
	env := domaintest.NewEnv(now)
	ctx := context.Background()
	require.NoError(t, env.Items.Create(ctx, newItem("P-1", "Hex bolt")))

	require.NoError(t, env.Items.Delete(ctx, "P-1"))
	assert.True(t, apperror.IsNotFound(env.Items.Delete(ctx, "P-1")))

	history, err := env.Items.History(ctx, "P-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, audit.ActionDelete, history[0].Action)
}

func TestListSearch(t *testing.T) {
	env := domaintest.NewEnv(now)
	ctx := context.Background()
	require.NoError(t, env.Items.Create(ctx, newItem("P-1", "Hex bolt")))
	require.NoError(t, env.Items.Create(ctx, newItem("P-2", "Washer")))
	require.NoError(t, env.Items.Create(ctx, newItem("B-3", "Carriage bolt")))

	res, err := env.Items.List(ctx, domain.ListFilter{Search: "BOLT"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalCount)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Carriage bolt", res.Items[0].Name)

	page, err := env.Items.List(ctx, domain.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Hex bolt", page.Items[0].Name)
}
