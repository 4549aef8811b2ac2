package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"halalradar/internal/core/domain"
)

// AnalysisLogRepository is append-only; audit rows are never updated.
type AnalysisLogRepository struct {
	db *sql.DB
}

func NewAnalysisLogRepository(db *sql.DB) *AnalysisLogRepository {
	return &AnalysisLogRepository{db: db}
}

func (r *AnalysisLogRepository) Insert(ctx context.Context, entry *domain.AnalysisLog) error {
	when := entry.AnalysisDate
	if when.IsZero() {
		when = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO ai_analysis_logs (restaurant_id, analysis_date, model_used, prompt_used, raw_response)
VALUES ($1,$2,$3,$4,$5)
`, entry.RestaurantID, when, entry.ModelUsed, entry.PromptUsed, nullableJSON(entry.RawResponse))
	if err != nil {
		return fmt.Errorf("insert analysis log: %w", err)
	}
	return nil
}
