package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"halalradar/internal/bootstrap"
	"halalradar/internal/config"
	"halalradar/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("collector", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewCollectorApp(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	report, err := app.CollectUC.Collect(ctx)
	if err != nil {
		log.Fatalf("collect error: %v", err)
	}
	slog.Info("collect finished",
		"run_id", report.RunID,
		"discovered", report.Discovered,
		"kept", report.Kept,
		"reviews_seen", report.ReviewsSeen,
	)
}
