package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"halalradar/internal/core/domain"
	"halalradar/internal/core/ports"
)

// Keywords a review must contain to count as evidence for the model.
var relevanceKeywords = []string{
	"halal", "zabiha", "muslim", "alcohol", "bar",
	"wine", "beer", "pork", "haram", "bacon",
}

// maxReviewsPerPrompt caps the sample handed to the model.
const maxReviewsPerPrompt = 30

type AnalyzeUseCase struct {
	restaurants ports.RestaurantRepository
	reviews     ports.ReviewRepository
	logs        ports.AnalysisLogRepository
	classifier  ports.ComplianceClassifier
}

func NewAnalyzeUseCase(
	restaurants ports.RestaurantRepository,
	reviews ports.ReviewRepository,
	logs ports.AnalysisLogRepository,
	classifier ports.ComplianceClassifier,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		restaurants: restaurants,
		reviews:     reviews,
		logs:        logs,
		classifier:  classifier,
	}
}

// AnalyzeByID runs the classification pipeline for one restaurant: filter
// reviews to the relevance set, one model call, one compliance update, one
// audit row. Insufficient evidence is a silent no-op. On any model or update
// failure nothing is persisted.
func (uc *AnalyzeUseCase) AnalyzeByID(ctx context.Context, restaurantID int64) error {
	restaurant, err := uc.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("fetch restaurant by id: %w", err)
	}

	samples, err := uc.relevantSamples(ctx, restaurantID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		slog.Info("no_relevant_reviews", "restaurant_id", restaurantID, "name", restaurant.Name)
		return nil
	}

	assessment, err := uc.classifier.Classify(ctx, restaurant.Name, restaurant.Category, samples)
	if err != nil {
		slog.Error("classify_failed", "restaurant_id", restaurantID, "name", restaurant.Name, "error", err)
		return fmt.Errorf("classify restaurant: %w", err)
	}

	if err := uc.restaurants.SaveAssessment(ctx, restaurantID, assessment); err != nil {
		slog.Error("save_assessment_failed", "restaurant_id", restaurantID, "error", err)
		return fmt.Errorf("save assessment: %w", err)
	}

	// The audit row is appended only after the compliance update succeeded.
	entry := &domain.AnalysisLog{
		RestaurantID: restaurantID,
		ModelUsed:    uc.classifier.Model(),
		PromptUsed:   fmt.Sprintf("Analyzed %d reviews for %s", len(samples), restaurant.Name),
		RawResponse:  assessment.Raw,
	}
	if err := uc.logs.Insert(ctx, entry); err != nil {
		return fmt.Errorf("insert analysis log: %w", err)
	}

	slog.Info("restaurant_analyzed",
		"restaurant_id", restaurantID,
		"name", restaurant.Name,
		"halal_status", assessment.HalalStatus,
		"alcohol_status", assessment.AlcoholStatus,
		"reviews_analyzed", len(samples),
	)
	return nil
}

func (uc *AnalyzeUseCase) relevantSamples(ctx context.Context, restaurantID int64) ([]domain.ReviewSample, error) {
	all, err := uc.reviews.ListByRestaurant(ctx, restaurantID, 0)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	var samples []domain.ReviewSample
	for _, rev := range all {
		if !relevanceSignal(rev.Text) {
			continue
		}
		sample := domain.ReviewSample{Text: rev.Text, Rating: rev.Rating}
		if rev.PublishedAt != nil {
			sample.Date = rev.PublishedAt.Format("2006-01-02")
		}
		samples = append(samples, sample)
		if len(samples) == maxReviewsPerPrompt {
			break
		}
	}
	return samples, nil
}

func relevanceSignal(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range relevanceKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
