package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/app"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/domaintest"
	"robotpacc/internal/domain/export"
)

func servicesFrom(env *domaintest.Env) *app.Services {
	return &app.Services{
		Items:     env.Items,
		Suppliers: env.Suppliers,
		Customers: env.Customers,
		Inward:    env.Inward,
		Outward:   env.Outward,
		Reports:   env.Reports,
		Export:    export.NewService(env.Inward, env.Outward),
	}
}

func TestSeedRunsMovementsThroughLedger(t *testing.T) {
	env := domaintest.NewEnv(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s := servicesFrom(env)
	ctx := context.Background()

	rep, err := app.Seed(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 12, rep.Created)
	assert.Zero(t, rep.Skipped)

	item, err := s.Items.Get(ctx, "ITEM001")
	require.NoError(t, err)
	assert.Equal(t, int64(70), item.Quantity)
	assert.True(t, types.MustMoney("5.5").Equal(item.AvgCost), item.AvgCost.String())

	lidar, err := s.Items.Get(ctx, "ITEM002")
	require.NoError(t, err)
	assert.Equal(t, int64(1), lidar.Quantity)

	expired, err := s.Reports.ListExpired(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "ITEM003", expired[0].Code)
}

func TestSeedIsRepeatable(t *testing.T) {
	env := domaintest.NewEnv(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s := servicesFrom(env)
	ctx := context.Background()

	_, err := app.Seed(ctx, s)
	require.NoError(t, err)

	rep, err := app.Seed(ctx, s)
	require.NoError(t, err)
	assert.Zero(t, rep.Created)
	assert.Equal(t, 12, rep.Skipped)

	item, err := s.Items.Get(ctx, "ITEM001")
	require.NoError(t, err)
	assert.Equal(t, int64(70), item.Quantity)
}

type seenReferences []string

func (s *seenReferences) Next(ctx context.Context, prefix string, period time.Time) (string, error) {
	return "", errors.New("seed supplies every reference")
}

func (s *seenReferences) Observe(ctx context.Context, prefix, reference string) error {
	*s = append(*s, prefix+":"+reference)
	return nil
}

func TestSeedAdvancesReferenceSequence(t *testing.T) {
	env := domaintest.NewEnv(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	var seen seenReferences
	env.Outward.WithReferenceNumbers(&seen)
	s := servicesFrom(env)
	ctx := context.Background()

	_, err := app.Seed(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, seenReferences{"OUT:OUT-2024-00001", "OUT:OUT-2024-00002"}, seen)

	_, err = app.Seed(ctx, s)
	require.NoError(t, err)
	assert.Len(t, seen, 2, "skipped issues are not observed again")
}
