package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"halalradar/internal/bootstrap"
	"halalradar/internal/config"
	"halalradar/internal/observability/logging"
	"halalradar/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{WithQueue: true, WithClassifier: true})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr: ":" + cfg.WorkerMetricsPort,
		Handler: func() http.Handler {
			mux := http.NewServeMux()
			mux.Handle("/metrics", workerMetrics.Handler())
			return mux
		}(),
	}
	go func() {
		log.Printf("worker metrics listening on :%s", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("worker metrics server error: %v", err)
		}
	}()

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeRestaurantFlagged(ctx, func(handlerCtx context.Context, restaurantID int64) error {
		classifyCtx, cancel := context.WithTimeout(handlerCtx, 2*time.Minute)
		defer cancel()

		workerMetrics.StartClassification()
		start := time.Now()
		classifyErr := app.AnalyzeUC.AnalyzeByID(classifyCtx, restaurantID)
		workerMetrics.FinishClassification("worker", time.Since(start), classifyErr)
		return classifyErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
