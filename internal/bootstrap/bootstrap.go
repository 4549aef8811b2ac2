package bootstrap

import (
	"context"
	"fmt"
	"time"

	"halalradar/internal/config"
	"halalradar/internal/core/ports"
	"halalradar/internal/core/usecase"
	"halalradar/internal/infrastructure/llm/gemini"
	"halalradar/internal/infrastructure/queue/nats"
	"halalradar/internal/infrastructure/repository/postgres"
	"halalradar/internal/infrastructure/search/serpapi"
	"halalradar/internal/infrastructure/snapshot/localfs"
)

// App wires the persistence-backed use cases. Binaries pick the ports they
// need; the collector uses NewCollectorApp instead since it never touches
// the database.
type App struct {
	Config config.Config

	Restaurants ports.RestaurantRepository
	Reviews     ports.ReviewRepository
	Queue       ports.MessageQueue

	ImportUC  ports.SnapshotImporter
	ScanUC    ports.CandidateScanner
	AnalyzeUC ports.ComplianceAnalyzer
	BatchUC   *usecase.BatchUseCase
	QueryUC   ports.RestaurantQueryService

	closeFn func()
}

// Options toggles optional infrastructure per binary.
type Options struct {
	// WithQueue connects NATS; the scanner publishes flagged ids and the
	// worker consumes them.
	WithQueue bool
	// WithClassifier builds the Gemini client; requires a configured key.
	WithClassifier bool
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	restaurants := postgres.NewRestaurantRepository(db)
	if err := restaurants.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	reviews := postgres.NewReviewRepository(db)
	logs := postgres.NewAnalysisLogRepository(db)

	snapshots, err := localfs.New(cfg.SnapshotDir)
	if err != nil {
		return nil, fmt.Errorf("init snapshot store: %w", err)
	}

	var queue *nats.Queue
	if opts.WithQueue {
		queue, err = nats.New(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			return nil, fmt.Errorf("init message queue: %w", err)
		}
	}

	var analyzeUC ports.ComplianceAnalyzer
	var batchUC *usecase.BatchUseCase
	if opts.WithClassifier {
		if err := cfg.RequireGeminiKey(); err != nil {
			return nil, err
		}
		classifier := gemini.New(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
		analyze := usecase.NewAnalyzeUseCase(restaurants, reviews, logs, classifier)
		analyzeUC = analyze
		batchUC = usecase.NewBatchUseCase(restaurants, analyze, cfg.AnalysisBatchSize)
	}

	app := &App{
		Config: cfg,

		Restaurants: restaurants,
		Reviews:     reviews,

		ImportUC:  usecase.NewImportUseCase(restaurants, reviews, snapshots),
		QueryUC:   usecase.NewQueryUseCase(restaurants, reviews),
		AnalyzeUC: analyzeUC,
		BatchUC:   batchUC,

		closeFn: func() {
			if queue != nil {
				queue.Close()
			}
			_ = db.Close()
		},
	}
	if queue != nil {
		app.Queue = queue
		app.ScanUC = usecase.NewScanUseCase(restaurants, reviews, queue)
	} else {
		app.ScanUC = usecase.NewScanUseCase(restaurants, reviews, nil)
	}
	return app, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// CollectorApp wires the discovery pipeline: SerpAPI in, JSON snapshots out.
type CollectorApp struct {
	Config    config.Config
	CollectUC ports.Collector
}

func NewCollectorApp(cfg config.Config) (*CollectorApp, error) {
	if err := cfg.RequireSerpKey(); err != nil {
		return nil, err
	}

	snapshots, err := localfs.New(cfg.SnapshotDir)
	if err != nil {
		return nil, fmt.Errorf("init snapshot store: %w", err)
	}

	search := serpapi.New(cfg.SerpBaseURL, cfg.SerpAPIKey, time.Duration(cfg.ReviewFetchPause)*time.Millisecond)
	collect := usecase.NewCollectUseCase(search, snapshots, usecase.CollectConfig{
		Locality:  cfg.SearchLocality,
		MaxPlaces: cfg.CollectMaxPlaces,
	})

	return &CollectorApp{Config: cfg, CollectUC: collect}, nil
}
