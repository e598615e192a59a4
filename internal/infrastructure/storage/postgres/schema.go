package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"robotpacc/pkg/logger"
)

// Schema is the idempotent DDL for every table the service uses.
//
//go:embed schema.sql
var Schema string

// EnsureSchema applies Schema. Every statement is IF NOT EXISTS, so it is safe
// to run on every start.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info(ctx, "database schema ensured")
	return nil
}
