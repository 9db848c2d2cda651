package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sonic "github.com/bytedance/sonic"

	"github.com/vlrfantasy/backend/external/vlr"
	"github.com/vlrfantasy/backend/internal/app"
	"github.com/vlrfantasy/backend/internal/config"
	"github.com/vlrfantasy/backend/internal/domain/fantasy"
	"github.com/vlrfantasy/backend/internal/infrastructure/repository/postgres"
	"github.com/vlrfantasy/backend/internal/observability"
	"github.com/vlrfantasy/backend/internal/platform/logging"
	"github.com/vlrfantasy/backend/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if err := cfg.ValidateImport(); err != nil {
		fmt.Fprintf(os.Stderr, "importer config: %v\n", err)
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer func() {
		_ = shutdownUptrace(context.Background())
	}()

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		logger.Error("open database", "error", err)
		return 1
	}
	defer db.Close()

	source := vlr.NewClient(vlr.ClientConfig{
		BaseURL:   cfg.VLRBaseURL,
		EventID:   cfg.VLREventID,
		EventSlug: cfg.VLREventSlug,
		Timeout:   cfg.VLRTimeout,
		UserAgent: cfg.VLRUserAgent,
		Logger:    logger,
	})

	importer := usecase.NewImportService(
		source,
		postgres.NewPlayerRepository(db),
		postgres.NewMatchStatRepository(db),
		fantasy.DefaultWeights(),
		logger,
	)

	report, err := importer.ImportEvent(ctx)
	if err != nil {
		logger.Error("import aborted", "event_id", cfg.VLREventID, "error", err)
		return 1
	}

	out, err := sonic.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("marshal import report", "error", err)
		return 1
	}
	fmt.Println(string(out))

	return 0
}
