package report_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowStockQuery(t *testing.T) {
	repo := NewReportRepo(nil)

	sql, args, err := repo.lowStockQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM items WHERE qty <= min_stock ORDER BY item_name ASC")
	assert.Contains(t, sql, "SELECT item_code, item_name")
	assert.Empty(t, args)
}
