package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"robotpacc/internal/config"
)

func TestPoolConfigFrom(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:       "postgres://localhost/robotpacc",
		DBMaxConns:        10,
		DBMinConns:        0,
		DBConnMaxLifetime: 5 * time.Minute,
	}

	pc := PoolConfigFrom(cfg)

	assert.Equal(t, cfg.DatabaseURL, pc.DSN)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(0), pc.MinConns)
	assert.Equal(t, 5*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, pc.MaxConnIdleTime, "unset idle time keeps the default")
	assert.Equal(t, time.Minute, pc.HealthCheckPeriod)
}

func TestTxOptions(t *testing.T) {
	m := NewTxManager(&Pool{}, 5*time.Second)

	rw := m.DefaultTxOptions()
	assert.Equal(t, pgx.ReadCommitted, rw.IsolationLevel)
	assert.Equal(t, pgx.ReadWrite, rw.AccessMode)

	ro := m.ReadOnlyTxOptions()
	assert.Equal(t, pgx.RepeatableRead, ro.IsolationLevel)
	assert.Equal(t, pgx.ReadOnly, ro.AccessMode)
	assert.Equal(t, 5*time.Second, ro.StatementTimeout)
}
