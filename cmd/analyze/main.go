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
	restaurantID := flag.Int64("id", 0, "analyze a single restaurant instead of the pending batch")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("analyze", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{WithClassifier: true})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if *restaurantID > 0 {
		if err := app.AnalyzeUC.AnalyzeByID(ctx, *restaurantID); err != nil {
			log.Fatalf("analyze error: %v", err)
		}
		slog.Info("analyze finished", "restaurant_id", *restaurantID)
		return
	}

	report, err := app.BatchUC.Run(ctx)
	if err != nil {
		log.Fatalf("batch analyze error: %v", err)
	}
	slog.Info("batch analyze finished",
		"selected", report.Selected,
		"analyzed", report.Analyzed,
		"failed", report.Failed,
	)
}
