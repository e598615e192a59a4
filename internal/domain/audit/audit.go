// Package audit defines the ledger audit trail contract.
// Every mutation of stock quantity or average cost, and every administrative
// change of a movement record, produces one entry.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionReceipt   Action = "receipt"
	ActionIssue     Action = "issue"
	ActionOverwrite Action = "overwrite"
)

// Entity types used in audit entries.
const (
	EntityItem    = "item"
	EntityInward  = "inward"
	EntityOutward = "outward"
)

// Change is a single audited mutation.
type Change struct {
	EntityType string
	EntityKey  string
	Action     Action
	Changes    map[string]any
}

// Entry is a stored audit record.
type Entry struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entityType"`
	EntityKey  string          `json:"entityKey"`
	Action     Action          `json:"action"`
	Changes    json.RawMessage `json:"changes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Recorder appends audit entries. Implementations write inside the caller's
// transaction so that an entry exists if and only if the mutation committed.
type Recorder interface {
	Record(ctx context.Context, change Change) error
}

// Reader reads back the audit history of one entity, newest first.
type Reader interface {
	History(ctx context.Context, entityType, entityKey string, limit int) ([]Entry, error)
}

// Nop discards entries.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, Change) error { return nil }

// History implements Reader.
func (Nop) History(context.Context, string, string, int) ([]Entry, error) { return nil, nil }

// Diff calculates the difference between old and new entity states.
func Diff(oldState, newState map[string]any) map[string]any {
	changes := make(map[string]any)

	for key, newVal := range newState {
		oldVal, exists := oldState[key]
		if !exists {
			changes[key] = map[string]any{"old": nil, "new": newVal}
		} else if !equal(oldVal, newVal) {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}

	for key, oldVal := range oldState {
		if _, exists := newState[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}

	return changes
}

// equal compares the printed form; decimals and ints print canonically.
func equal(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
