package ports

import (
	"context"

	"halalradar/internal/core/domain"
)

// RestaurantRepository persists and reads restaurant state.
type RestaurantRepository interface {
	// Upsert inserts or updates by place_id and returns the row id.
	// Compliance fields are never touched on conflict.
	Upsert(ctx context.Context, r *domain.Restaurant) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	// ListScanTargets returns id, category, and current halal status for
	// every restaurant.
	ListScanTargets(ctx context.Context) ([]domain.ScanTarget, error)
	SetPotentialHalal(ctx context.Context, id int64, potential bool) error
	// SaveAssessment updates all four compliance fields and updated_at
	// in a single statement.
	SaveAssessment(ctx context.Context, id int64, a domain.ComplianceAssessment) error
	// ListPendingAnalysis returns restaurants with halal_status='unknown'
	// and is_potential_halal=true, up to limit.
	ListPendingAnalysis(ctx context.Context, limit int) ([]domain.Restaurant, error)
	// ListWithReviews returns every restaurant joined with up to
	// reviewsPerRestaurant of its reviews.
	ListWithReviews(ctx context.Context, reviewsPerRestaurant int) ([]domain.Restaurant, error)
	AdminList(ctx context.Context, filter domain.AdminFilter) ([]domain.Restaurant, int, error)
}

// ReviewRepository persists and reads reviews.
type ReviewRepository interface {
	// Upsert inserts or updates by review_id.
	Upsert(ctx context.Context, rev *domain.Review) error
	// ListByRestaurant returns reviews ordered by published date descending;
	// limit <= 0 means no limit.
	ListByRestaurant(ctx context.Context, restaurantID int64, limit int) ([]domain.Review, error)
	// HasKeywordMatch reports whether any review of the restaurant contains
	// one of the keywords, evaluated server-side.
	HasKeywordMatch(ctx context.Context, restaurantID int64, keywords []string) (bool, error)
}

// AnalysisLogRepository appends audit rows. Rows are never updated.
type AnalysisLogRepository interface {
	Insert(ctx context.Context, entry *domain.AnalysisLog) error
}

// ComplianceClassifier performs the single model call for one restaurant.
type ComplianceClassifier interface {
	Classify(ctx context.Context, name, category string, samples []domain.ReviewSample) (domain.ComplianceAssessment, error)
	Model() string
}

// PlaceSearch discovers restaurant candidates and their reviews from the
// upstream maps-search API.
type PlaceSearch interface {
	SearchPlaces(ctx context.Context, query string, offset int) ([]domain.PlaceResult, error)
	FetchReviews(ctx context.Context, placeID string) ([]domain.PlaceReview, error)
}

// MessageQueue publishes/consumes flagged-restaurant events.
type MessageQueue interface {
	PublishRestaurantFlagged(ctx context.Context, restaurantID int64) error
	SubscribeRestaurantFlagged(ctx context.Context, handler func(context.Context, int64) error) error
}

// SnapshotStore writes collector output as JSON documents.
type SnapshotStore interface {
	WriteJSON(ctx context.Context, name string, v any) error
	ReadJSON(ctx context.Context, name string, v any) error
}
