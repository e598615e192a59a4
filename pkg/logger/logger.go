// Package logger wraps zap with helpers that pick up the trace stored in a
// context.Context.
package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appctx "robotpacc/internal/core/context"
)

// Logger is a zap SugaredLogger. Package level helpers use the process wide
// instance installed with SetDefault.
type Logger struct {
	*zap.SugaredLogger
}

// Config selects level, encoder and the service name stamped on every line.
type Config struct {
	Level       string // debug, info, warn, error
	Development bool   // console encoder with colors
	Service     string
	OutputPaths []string
}

// New builds a Logger. An unknown level falls back to info.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}

	z, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	if cfg.Service != "" {
		z = z.With(zap.String("service", cfg.Service))
	}
	return &Logger{z.Sugar()}, nil
}

// NewNop discards everything.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

var (
	mu      sync.RWMutex
	current *Logger
)

// Default returns the process wide logger, creating a production one on
// first use.
func Default() *Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		z, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			z = zap.NewNop()
		}
		current = &Logger{z.Sugar()}
	}
	return current
}

// SetDefault installs l as the process wide logger.
func SetDefault(l *Logger) {
	mu.Lock()
	current = l
	mu.Unlock()
}

// WithContext tags the logger with the trace found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	t := appctx.GetTrace(ctx)
	if t == nil {
		return l
	}
	return &Logger{l.SugaredLogger.With(
		"trace_id", t.TraceID,
		"request_id", t.RequestID,
		"origin", string(t.Origin),
	)}
}

// With adds key-value pairs to the logger.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{l.SugaredLogger.With(keysAndValues...)}
}

func from(ctx context.Context) *Logger {
	return Default().WithContext(ctx)
}

// Debug logs at debug level with the trace from ctx.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Debugw(msg, keysAndValues...)
}

// Info logs at info level with the trace from ctx.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Infow(msg, keysAndValues...)
}

// Warn logs at warn level with the trace from ctx.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Warnw(msg, keysAndValues...)
}

// Error logs at error level with the trace from ctx.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	from(ctx).Errorw(msg, keysAndValues...)
}
