// Package context carries the correlation ids of one unit of work: an HTTP
// request or a command line run.
package context

import (
	"context"

	"github.com/google/uuid"
)

// Origin names what started the unit of work.
type Origin string

const (
	OriginHTTP Origin = "http"
	OriginSeed Origin = "seed"
)

// TraceContext holds the ids attached to logs and audit rows.
type TraceContext struct {
	TraceID   string
	RequestID string
	Origin    Origin
}

type traceKey struct{}

// NewTraceContext starts a fresh trace for origin.
func NewTraceContext(origin Origin) *TraceContext {
	return &TraceContext{
		TraceID:   uuid.NewString(),
		RequestID: uuid.NewString(),
		Origin:    origin,
	}
}

// WithTrace stores t in ctx.
func WithTrace(ctx context.Context, t *TraceContext) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

// GetTrace returns the trace stored in ctx, or nil.
func GetTrace(ctx context.Context) *TraceContext {
	t, _ := ctx.Value(traceKey{}).(*TraceContext)
	return t
}

// GetRequestID returns the request id stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}
