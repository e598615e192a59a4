// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"robotpacc/internal/app"
	"robotpacc/internal/config"
	appctx "robotpacc/internal/core/context"
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
		Development: true,
		Service:     "robotpacc-seed",
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx := appctx.WithTrace(context.Background(), appctx.NewTraceContext(appctx.OriginSeed))

	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	services, err := app.NewServices(pool, cfg)
	if err != nil {
		log.Fatalw("failed to build services", "error", err)
	}

	rep, err := app.Seed(ctx, services)
	if err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	log.Infow("seeding completed", "created", rep.Created, "skipped", rep.Skipped)
}
