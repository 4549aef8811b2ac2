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
	"halalradar/internal/observability/logging"
)

func main() {
	publish := flag.Bool("publish", false, "publish flagged restaurant ids to the queue")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("scan", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{WithQueue: *publish})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	report, err := app.ScanUC.ScanAll(ctx)
	if err != nil {
		log.Fatalf("scan error: %v", err)
	}
	slog.Info("scan finished",
		"scanned", report.Scanned,
		"flagged", report.Flagged,
		"unflagged", report.Unflagged,
		"failed", report.Failed,
	)
}
