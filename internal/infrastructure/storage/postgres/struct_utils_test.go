package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"robotpacc/internal/core/types"
)

type Stamped struct {
	CreatedAt time.Time `db:"created_at"`
}

type sampleRow struct {
	Stamped
	Code    string      `db:"item_code"`
	Qty     int64       `db:"qty"`
	Cost    types.Money `db:"avg_cost"`
	Ignored string      `db:"-"`
	Plain   string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[sampleRow]()
	assert.Equal(t, []string{"created_at", "item_code", "qty", "avg_cost"}, cols)

	// Pointer type parameters resolve to the same columns.
	assert.Equal(t, cols, ExtractDBColumns[*sampleRow]())
}

func TestStructToMap(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	row := &sampleRow{
		Stamped: Stamped{CreatedAt: now},
		Code:    "P-1",
		Qty:     7,
		Cost:    types.MustMoney("2.5"),
		Ignored: "x",
	}

	m := StructToMap(row)

	assert.Len(t, m, 4)
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "P-1", m["item_code"])
	assert.Equal(t, int64(7), m["qty"])
	assert.True(t, types.MustMoney("2.5").Equal(m["avg_cost"].(types.Money)))
	assert.Nil(t, StructToMap("not a struct"))
}

func TestPick(t *testing.T) {
	data := map[string]any{"a": 1, "b": 2, "c": 3}
	got := Pick(data, []string{"a", "b", "z"}, "b")
	assert.Equal(t, map[string]any{"a": 1}, got)
}
