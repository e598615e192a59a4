package relations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
)

type keySet struct {
	keys  map[string]bool
	calls int
	err   error
}

func newKeySet(keys ...string) *keySet {
	s := &keySet{keys: make(map[string]bool)}
	for _, k := range keys {
		s.keys[k] = true
	}
	return s
}

func (s *keySet) lookup(key string) (bool, error) {
	s.calls++
	return s.keys[key], s.err
}

func (s *keySet) ExistsByCode(_ context.Context, code string) (bool, error)  { return s.lookup(code) }
func (s *keySet) ExistsByPhone(_ context.Context, phone string) (bool, error) { return s.lookup(phone) }
func (s *keySet) ExistsByUUID(_ context.Context, uuid string) (bool, error)   { return s.lookup(uuid) }

func TestCheckInward(t *testing.T) {
	ctx := context.Background()

	t.Run("all references valid", func(t *testing.T) {
		v := NewValidator(newKeySet("P-1"), newKeySet("555"), newKeySet("IN-1"), newKeySet())
		assert.NoError(t, v.CheckInward(ctx, "P-1", "555", "IN-2"))
	})

	t.Run("item checked first", func(t *testing.T) {
		suppliers, inwards := newKeySet(), newKeySet("IN-1")
		v := NewValidator(newKeySet(), suppliers, inwards, newKeySet())

		err := v.CheckInward(ctx, "P-1", "555", "IN-1")
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, "item", appErr.Details["entity"])
		assert.Zero(t, suppliers.calls)
		assert.Zero(t, inwards.calls)
	})

	t.Run("supplier before uuid", func(t *testing.T) {
		inwards := newKeySet("IN-1")
		v := NewValidator(newKeySet("P-1"), newKeySet(), inwards, newKeySet())

		err := v.CheckInward(ctx, "P-1", "555", "IN-1")
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, "supplier", appErr.Details["entity"])
		assert.Zero(t, inwards.calls)
	})

	t.Run("used uuid", func(t *testing.T) {
		v := NewValidator(newKeySet("P-1"), newKeySet("555"), newKeySet("IN-1"), newKeySet())
		err := v.CheckInward(ctx, "P-1", "555", "IN-1")
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		failing := newKeySet()
		failing.err = errors.New("connection reset")
		v := NewValidator(failing, newKeySet(), newKeySet(), newKeySet())
		err := v.CheckInward(ctx, "P-1", "555", "IN-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, failing.err)
	})
}

func TestCheckOutward(t *testing.T) {
	ctx := context.Background()
	outwards := newKeySet("OUT-1")
	v := NewValidator(newKeySet("P-1"), newKeySet(), newKeySet("OUT-2"), outwards)

	assert.NoError(t, v.CheckOutward(ctx, "P-1", "OUT-2"), "uuids are unique per movement kind")
	assert.True(t, apperror.IsConflict(v.CheckOutward(ctx, "P-1", "OUT-1")))
	assert.True(t, apperror.IsNotFound(v.CheckOutward(ctx, "P-9", "OUT-3")))
	assert.True(t, apperror.IsValidation(v.CheckOutward(ctx, "", "OUT-3")))
}
