package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{"name": "Bolt", "qty": int64(5), "notes": "x"}
	newState := map[string]any{"name": "Bolt M6", "qty": int64(5), "desc": "zinc"}

	changes := Diff(oldState, newState)

	assert.Len(t, changes, 3)
	assert.Equal(t, map[string]any{"old": "Bolt", "new": "Bolt M6"}, changes["name"])
	assert.Equal(t, map[string]any{"old": nil, "new": "zinc"}, changes["desc"])
	assert.Equal(t, map[string]any{"old": "x", "new": nil}, changes["notes"])
	assert.NotContains(t, changes, "qty")
}
