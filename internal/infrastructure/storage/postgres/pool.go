// Package postgres stores the item ledger and movement history in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"robotpacc/internal/config"
	"robotpacc/pkg/logger"
)

// ApplicationName is reported to the server for every connection.
const ApplicationName = "robotpacc"

// ledgerTables must exist before the service reports ready.
var ledgerTables = []string{"items", "inward_movements", "outward_movements"}

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	DSN               string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// DefaultPoolConfig returns the pool settings used when config leaves them unset.
func DefaultPoolConfig(dsn string) PoolConfig {
	return PoolConfig{
		DSN:               dsn,
		MaxConns:          25,
		MinConns:          2,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
	}
}

// PoolConfigFrom overlays the DB_* settings on DefaultPoolConfig.
func PoolConfigFrom(cfg *config.Config) PoolConfig {
	pc := DefaultPoolConfig(cfg.DatabaseURL)
	if cfg.DBMaxConns > 0 {
		pc.MaxConns = cfg.DBMaxConns
	}
	if cfg.DBMinConns >= 0 {
		pc.MinConns = cfg.DBMinConns
	}
	if cfg.DBConnMaxLifetime > 0 {
		pc.MaxConnLifetime = cfg.DBConnMaxLifetime
	}
	if cfg.DBConnMaxIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.DBConnMaxIdleTime
	}
	return pc
}

// Pool is the pgx pool shared by the transaction manager, the sequence
// numbers and the health check.
type Pool struct {
	*pgxpool.Pool
}

// NewPool connects and pings before returning.
func NewPool(ctx context.Context, cfg PoolConfig) (*Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.HealthCheckPeriod = cfg.HealthCheckPeriod
	pc.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	pc.ConnConfig.RuntimeParams["timezone"] = "UTC"

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Pool{Pool: pool}, nil
}

// Close releases every connection. Safe on a zero Pool.
func (p *Pool) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

// Ping checks connectivity and that the ledger tables are present, so a
// database without the schema is reported as not ready.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	var missing []string
	err := p.Pool.QueryRow(ctx,
		`SELECT coalesce(array_agg(t), '{}') FROM unnest($1::text[]) AS t WHERE to_regclass(t) IS NULL`,
		ledgerTables,
	).Scan(&missing)
	if err != nil {
		return fmt.Errorf("check ledger tables: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("ledger tables missing: %v", missing)
	}
	return nil
}

// PoolStats is a snapshot of pool usage for the info endpoint.
type PoolStats struct {
	TotalConns      int32         `json:"totalConns"`
	AcquiredConns   int32         `json:"acquiredConns"`
	IdleConns       int32         `json:"idleConns"`
	MaxConns        int32         `json:"maxConns"`
	AcquireCount    int64         `json:"acquireCount"`
	AcquireDuration time.Duration `json:"acquireDuration"`
}

// Stats reads the current pool counters.
func (p *Pool) Stats() PoolStats {
	s := p.Pool.Stat()
	return PoolStats{
		TotalConns:      s.TotalConns(),
		AcquiredConns:   s.AcquiredConns(),
		IdleConns:       s.IdleConns(),
		MaxConns:        s.MaxConns(),
		AcquireCount:    s.AcquireCount(),
		AcquireDuration: s.AcquireDuration(),
	}
}

// LogStats writes the pool counters at info level.
func (p *Pool) LogStats(ctx context.Context) {
	s := p.Stats()
	logger.Info(ctx, "database pool stats",
		"total", s.TotalConns,
		"acquired", s.AcquiredConns,
		"idle", s.IdleConns,
		"max", s.MaxConns,
		"acquire_count", s.AcquireCount,
	)
}

