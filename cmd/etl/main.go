// cmd/etl/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fleximart/retail-ingress/pkg/config"
	"github.com/fleximart/retail-ingress/pkg/extract"
	"github.com/fleximart/retail-ingress/pkg/pipeline"
	"github.com/fleximart/retail-ingress/pkg/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("Ingest run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pg, err := store.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	source := extract.NewCSVSource(cfg.DataDir, extract.Files{
		Customers: cfg.CustomersFile,
		Products:  cfg.ProductsFile,
		Sales:     cfg.SalesFile,
	}, logger)

	runID := uuid.New().String()
	loader := store.NewLoader(pg, runID, logger)
	p := pipeline.New(cfg, source, loader, runID, logger)

	rep, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if !rep.Succeeded() {
		logger.Warn("Run completed with failed load", zap.String("status", rep.LoadStatus))
	}
	return nil
}

// newLogger builds the process logger from the configured level and
// format ("json" or "console").
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	if format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	return zcfg.Build()
}
