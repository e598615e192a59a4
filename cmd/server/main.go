// Package main is the entry point for the robotpacc API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"robotpacc/internal/app"
	"robotpacc/internal/config"
	v1 "robotpacc/internal/infrastructure/http/v1"
	"robotpacc/internal/infrastructure/storage/postgres"
	"robotpacc/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
		Service:     "robotpacc",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	log.Infow("starting robotpacc server", "env", cfg.AppEnv)

	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.DBApplySchema {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalw("failed to apply schema", "error", err)
		}
		log.Info("schema applied")
	}

	services, err := app.NewServices(pool, cfg)
	if err != nil {
		log.Fatalw("failed to build services", "error", err)
	}

	router := v1.NewRouter(services.RouterConfig(pool, log, cfg.IsDevelopment()))

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.AppPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Infow("shutting down server", "signal", sig.String())
	pool.LogStats(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
