package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"halalradar/internal/bootstrap"
	"halalradar/internal/config"
	"halalradar/internal/core/usecase"
	"halalradar/internal/observability/logging"
)

func main() {
	snapshotName := flag.String("snapshot", usecase.SnapshotComplete, "snapshot file to import from the snapshot directory")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("import", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	report, err := app.ImportUC.ImportSnapshot(ctx, *snapshotName)
	if err != nil {
		log.Fatalf("import error: %v", err)
	}
	slog.Info("import finished",
		"snapshot", *snapshotName,
		"restaurants", report.Restaurants,
		"reviews", report.Reviews,
		"skipped", report.Skipped,
	)
}
