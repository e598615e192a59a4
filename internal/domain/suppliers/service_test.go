package suppliers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/domaintest"
	"robotpacc/internal/domain/suppliers"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newSupplier(phone, item string) *suppliers.Supplier {
	return &suppliers.Supplier{
		Phone:         phone,
		ItemCode:      item,
		Name:          "Acme Fasteners",
		ContactPerson: "R. Diaz",
		Email:         "sales@acme.test",
		Address:       "4 Mill Lane",
	}
}

func TestCreateRequiresExistingItem(t *testing.T) {
	env := domaintest.NewEnv(now)
	ctx := context.Background()

	err := env.Suppliers.Create(ctx, newSupplier("555-0100", "P-1"))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	env.PutItem("P-1", 0, "0")
	require.NoError(t, env.Suppliers.Create(ctx, newSupplier("555-0100", "P-1")))

	got, err := env.Suppliers.Get(ctx, "555-0100")
	require.NoError(t, err)
	assert.Equal(t, now, got.CreatedAt)

	err = env.Suppliers.Create(ctx, newSupplier("555-0100", "P-1"))
	assert.True(t, apperror.IsConflict(err))
}

func TestValidate(t *testing.T) {
	s := newSupplier("555-0100", "P-1")
	s.Email = "not-an-email"
	err := s.Validate()
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "email", appErr.Details["field"])

	s = newSupplier("", "P-1")
	err = s.Validate()
	appErr, _ = apperror.AsAppError(err)
	assert.Equal(t, "phone", appErr.Details["field"])
}

func TestListAndDelete(t *testing.T) {
	env := domaintest.NewEnv(now)
	env.PutItem("P-1", 0, "0")
	ctx := context.Background()

	require.NoError(t, env.Suppliers.Create(ctx, newSupplier("555-0100", "P-1")))
	other := newSupplier("555-0200", "P-1")
	other.Name = "Bolt Brothers"
	require.NoError(t, env.Suppliers.Create(ctx, other))

	res, err := env.Suppliers.List(ctx, domain.ListFilter{Search: "bolt"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "555-0200", res.Items[0].Phone)

	require.NoError(t, env.Suppliers.Delete(ctx, "555-0200"))
	assert.True(t, apperror.IsNotFound(env.Suppliers.Delete(ctx, "555-0200")))
}
