// Package numerator provides sequential reference numbering backed by the
// sys_sequences table.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service provides reference numbering. Every number is an UPSERT ...
// RETURNING on the querier resolved for the call, so numbers drawn inside
// the caller's transaction have no gaps.
type Service struct {
	querier func(ctx context.Context) Querier
}

// NewWithResolver creates a numerator that resolves its querier per call,
// so that numbers are drawn inside the caller's transaction when one is open.
func NewWithResolver(resolve func(ctx context.Context) Querier) *Service {
	return &Service{querier: resolve}
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "OUT")
	Prefix string

	// IncludeYear adds year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig numbers per year: PREFIX-YYYY-NNNNN.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// GetNextNumber draws the next number of cfg for period.
func (s *Service) GetNextNumber(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	key := buildKey(cfg, period)

	var num int64
	err := s.querier(ctx).QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number from %s: %w", key, err)
	}
	return Format(cfg, period, num), nil
}

// Next draws the next number for prefix using DefaultConfig.
func (s *Service) Next(ctx context.Context, prefix string, period time.Time) (string, error) {
	return s.GetNextNumber(ctx, DefaultConfig(prefix), period)
}

// AdvanceTo moves the counter of cfg for period to at least last, so the
// next drawn number is above it. The counter never moves backwards.
func (s *Service) AdvanceTo(ctx context.Context, cfg Config, period time.Time, last int64) error {
	if s == nil {
		return fmt.Errorf("numerator service is not initialized")
	}
	key := buildKey(cfg, period)

	var current int64
	err := s.querier(ctx).QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = GREATEST(sys_sequences.current_val, $2)
		RETURNING current_val
	`, key, last).Scan(&current)
	if err != nil {
		return fmt.Errorf("advance %s to %d: %w", key, last, err)
	}
	return nil
}

// Observe advances the counter past a number that was assigned by hand.
// References outside the DefaultConfig(prefix) namespace are ignored.
func (s *Service) Observe(ctx context.Context, prefix, formatted string) error {
	cfg := DefaultConfig(prefix)
	period, num, ok := ParseNumber(cfg, formatted)
	if !ok {
		return nil
	}
	return s.AdvanceTo(ctx, cfg, period, num)
}

func buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

// Format renders num the way GetNextNumber does.
func Format(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}
	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber splits a number produced under cfg into its period and
// sequence value. Only yearly or unbounded configs can be parsed back.
func ParseNumber(cfg Config, formatted string) (time.Time, int64, bool) {
	rest, ok := strings.CutPrefix(formatted, cfg.Prefix+"-")
	if !ok || cfg.ResetPeriod == "month" {
		return time.Time{}, 0, false
	}

	var period time.Time
	if cfg.IncludeYear {
		year, tail, ok := strings.Cut(rest, "-")
		if !ok || len(year) != 4 {
			return time.Time{}, 0, false
		}
		y, err := strconv.Atoi(year)
		if err != nil {
			return time.Time{}, 0, false
		}
		period = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		rest = tail
	}

	num, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || num <= 0 {
		return time.Time{}, 0, false
	}
	return period, num, true
}
