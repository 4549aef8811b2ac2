package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"halalradar/internal/core/ports"
)

// defaultAnalysisBatchSize bounds one driver run.
const defaultAnalysisBatchSize = 5

type BatchReport struct {
	Selected int
	Analyzed int
	Failed   int
}

// BatchUseCase selects restaurants still pending classification and runs the
// analyzer over them sequentially.
type BatchUseCase struct {
	restaurants ports.RestaurantRepository
	analyzer    ports.ComplianceAnalyzer
	batchSize   int
}

func NewBatchUseCase(restaurants ports.RestaurantRepository, analyzer ports.ComplianceAnalyzer, batchSize int) *BatchUseCase {
	if batchSize <= 0 {
		batchSize = defaultAnalysisBatchSize
	}
	return &BatchUseCase{
		restaurants: restaurants,
		analyzer:    analyzer,
		batchSize:   batchSize,
	}
}

// Run picks up to batchSize restaurants with halal_status=unknown and
// is_potential_halal=true. A failing selection query is fatal; a failing
// individual analysis is counted and the batch continues.
func (uc *BatchUseCase) Run(ctx context.Context) (BatchReport, error) {
	targets, err := uc.restaurants.ListPendingAnalysis(ctx, uc.batchSize)
	if err != nil {
		return BatchReport{}, fmt.Errorf("select analysis batch: %w", err)
	}

	report := BatchReport{Selected: len(targets)}
	for _, r := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		slog.Info("analyzing_restaurant", "restaurant_id", r.ID, "name", r.Name)
		if err := uc.analyzer.AnalyzeByID(ctx, r.ID); err != nil {
			report.Failed++
			continue
		}
		report.Analyzed++
	}
	return report, nil
}
