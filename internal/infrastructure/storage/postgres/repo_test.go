package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/domain"
)

type testRow struct {
	Code  string `db:"code"`
	Name  string `db:"name"`
	Item  string `db:"item_code"`
	Phone string `db:"phone"`
}

func newTestRepo() *KeyedRepo[*testRow] {
	return NewKeyedRepo(nil, TableSpec{
		Table:              "things",
		KeyColumn:          "code",
		Entity:             "thing",
		SearchColumns:      []string{"code", "name"},
		ItemColumn:         "item_code",
		CounterpartyColumn: "phone",
		DefaultOrder:       "name ASC",
	}, ExtractDBColumns[testRow](), func() *testRow { return &testRow{} })
}

func TestFilteredSelect(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name     string
		filter   domain.ListFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no filter",
			filter:  domain.ListFilter{},
			wantSQL: "SELECT code, name, item_code, phone FROM things",
		},
		{
			name:     "search",
			filter:   domain.ListFilter{Search: " bolt "},
			wantSQL:  "SELECT code, name, item_code, phone FROM things WHERE (code ILIKE $1 OR name ILIKE $2)",
			wantArgs: []any{"%bolt%", "%bolt%"},
		},
		{
			name:     "item and counterparty",
			filter:   domain.ListFilter{ItemCode: "P-1", Counterparty: "555"},
			wantSQL:  "SELECT code, name, item_code, phone FROM things WHERE item_code = $1 AND phone = $2",
			wantArgs: []any{"P-1", "555"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := repo.FilteredSelect(tt.filter).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, len(tt.wantArgs), len(args))
			for i := range tt.wantArgs {
				assert.Equal(t, tt.wantArgs[i], args[i])
			}
		})
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	got, err := repo.parseOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "name ASC", got)

	got, err = repo.parseOrderBy("-code")
	require.NoError(t, err)
	assert.Equal(t, "code DESC", got)

	got, err = repo.parseOrderBy("+phone")
	require.NoError(t, err)
	assert.Equal(t, "phone ASC", got)

	_, err = repo.parseOrderBy("name; DROP TABLE things")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestLockingSelect(t *testing.T) {
	repo := newTestRepo()
	sql, _, err := repo.BaseSelect().Where("code = ?", "x").Suffix("FOR UPDATE").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT code, name, item_code, phone FROM things WHERE code = $1 FOR UPDATE", sql)
}
