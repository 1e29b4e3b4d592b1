// Command cleanup deletes stored files of expired responses and clears their
// file references. It is intended to be invoked by an external cron job, not
// as an in-process goroutine. Re-running it is safe.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/korima-app/korima-backend/internal/adapter/blobstore"
	"github.com/korima-app/korima-backend/internal/adapter/postgres"
	"github.com/korima-app/korima-backend/internal/adapter/postgres/response"
	"github.com/korima-app/korima-backend/internal/app"
	"github.com/korima-app/korima-backend/internal/config"
	"github.com/korima-app/korima-backend/internal/service/cleanup"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	blobs, err := blobstore.New(cfg.Storage, logger)
	if err != nil {
		logger.Error("init blob store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := cleanup.NewService(logger, response.New(pool), blobs, nil)

	report, err := svc.SweepExpiredFiles(ctx)
	if err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup completed",
		slog.Int("total", report.Total),
		slog.Int("deleted", report.Deleted),
		slog.Int("errors", len(report.Errors)),
	)
	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}
