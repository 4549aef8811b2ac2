package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"halalradar/internal/core/domain"
	"halalradar/internal/core/ports"
)

// Broad evidence set for the public listing. Looser than the scan set on
// purpose: plain "meat" mentions are worth surfacing as quotes.
var evidenceKeywords = []string{"halal", "zabiha", "muslim", "meat", "pork", "alcohol"}

const (
	listReviewsPerRestaurant = 10
	maxEvidenceReviews       = 5
	adminDetailReviewLimit   = 50
	defaultAdminPageLimit    = 20
)

type QueryUseCase struct {
	restaurants ports.RestaurantRepository
	reviews     ports.ReviewRepository
}

func NewQueryUseCase(restaurants ports.RestaurantRepository, reviews ports.ReviewRepository) *QueryUseCase {
	return &QueryUseCase{restaurants: restaurants, reviews: reviews}
}

// ListSummaries reshapes every restaurant plus a capped review sample into
// the public display taxonomy.
func (uc *QueryUseCase) ListSummaries(ctx context.Context) ([]domain.RestaurantSummary, error) {
	restaurants, err := uc.restaurants.ListWithReviews(ctx, listReviewsPerRestaurant)
	if err != nil {
		return nil, fmt.Errorf("list restaurants with reviews: %w", err)
	}

	summaries := make([]domain.RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		summaries = append(summaries, Summarize(r))
	}
	return summaries, nil
}

// Summarize computes the derived display record for one restaurant.
func Summarize(r domain.Restaurant) domain.RestaurantSummary {
	evidence := evidenceReviews(r.Reviews)
	return domain.RestaurantSummary{
		ID:             r.ID,
		PlaceID:        r.PlaceID,
		Name:           r.Name,
		Address:        r.Address,
		Category:       r.Category,
		Rating:         r.Rating,
		IsHalal:        r.IsHalal,
		Classification: domain.DisplayClassFor(r.HalalStatus),
		HalalReviews:   evidence,
		MentionsZabiha: mentionsZabiha(evidence),
	}
}

func (uc *QueryUseCase) AdminList(ctx context.Context, filter domain.AdminFilter) (domain.AdminPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultAdminPageLimit
	}

	rows, total, err := uc.restaurants.AdminList(ctx, filter)
	if err != nil {
		return domain.AdminPage{}, fmt.Errorf("admin list: %w", err)
	}
	if rows == nil {
		rows = []domain.Restaurant{}
	}

	return domain.AdminPage{
		Data: rows,
		Meta: domain.PageMeta{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

func (uc *QueryUseCase) AdminGet(ctx context.Context, id int64) (*domain.Restaurant, error) {
	restaurant, err := uc.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := uc.reviews.ListByRestaurant(ctx, id, adminDetailReviewLimit)
	if err != nil {
		return nil, fmt.Errorf("list restaurant reviews: %w", err)
	}
	restaurant.Reviews = reviews
	return restaurant, nil
}

func evidenceReviews(reviews []domain.Review) []string {
	evidence := []string{}
	for _, rev := range reviews {
		if !matchesAny(rev.Text, evidenceKeywords) {
			continue
		}
		evidence = append(evidence, rev.Text)
		if len(evidence) == maxEvidenceReviews {
			break
		}
	}
	return evidence
}

func mentionsZabiha(evidence []string) bool {
	for _, text := range evidence {
		if strings.Contains(strings.ToLower(text), "zabiha") {
			return true
		}
	}
	return false
}

func matchesAny(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
