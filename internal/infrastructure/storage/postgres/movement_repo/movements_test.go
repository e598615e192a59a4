package movement_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/domain"
)

func TestInwardRepo_ListQuery(t *testing.T) {
	repo := NewInwardRepo(nil)

	sql, args, err := repo.FilteredSelect(domain.ListFilter{ItemCode: "P-1", Counterparty: "555-0100"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM inward_movements")
	assert.Contains(t, sql, "WHERE item_code = $1 AND supplier_phone = $2")
	assert.Equal(t, []any{"P-1", "555-0100"}, args)
}

func TestOutwardRepo_Columns(t *testing.T) {
	repo := NewOutwardRepo(nil)

	cols := repo.Columns()
	assert.Equal(t, "uuid", cols[0])
	assert.Contains(t, cols, "profit_percentage")
	assert.Contains(t, cols, "customer_phone")

	sql, args, err := repo.FilteredSelect(domain.ListFilter{Counterparty: "555-0200"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE customer_phone = $1")
	assert.Equal(t, []any{"555-0200"}, args)
}
