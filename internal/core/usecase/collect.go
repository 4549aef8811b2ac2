package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"halalradar/internal/core/domain"
	"halalradar/internal/core/ports"
)

// Snapshot document names written by one collector run.
const (
	SnapshotRestaurants = "raw_restaurants.json"
	SnapshotReviewsMap  = "raw_reviews_map.json"
	SnapshotComplete    = "complete_raw_dataset.json"
)

const (
	searchPageSize  = 20
	searchOffsetCap = 200
)

type CollectConfig struct {
	Locality  string
	MaxPlaces int
}

// CollectUseCase discovers restaurants around a locality, harvests their
// reviews and writes raw JSON snapshots for the importer.
type CollectUseCase struct {
	search    ports.PlaceSearch
	snapshots ports.SnapshotStore
	cfg       CollectConfig
}

func NewCollectUseCase(search ports.PlaceSearch, snapshots ports.SnapshotStore, cfg CollectConfig) *CollectUseCase {
	if cfg.MaxPlaces <= 0 {
		cfg.MaxPlaces = 150
	}
	return &CollectUseCase{search: search, snapshots: snapshots, cfg: cfg}
}

func (uc *CollectUseCase) Collect(ctx context.Context) (ports.CollectReport, error) {
	report := ports.CollectReport{RunID: uuid.NewString()}
	log := slog.With("run_id", report.RunID, "locality", uc.cfg.Locality)

	places, discovered, err := uc.discover(ctx, log)
	if err != nil {
		return report, err
	}
	report.Discovered = discovered
	report.Kept = len(places)
	log.Info("discovery_complete", "discovered", discovered, "kept", len(places))

	reviewsByPlace := make(map[string][]domain.PlaceReview, len(places))
	for i := range places {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		place := &places[i]
		reviews, err := uc.search.FetchReviews(ctx, place.PlaceID)
		if err != nil {
			// One place without reviews is not worth aborting the harvest.
			log.Warn("fetch_reviews_failed", "place_id", place.PlaceID, "error", err)
			reviews = nil
		}
		place.Reviews = reviews
		reviewsByPlace[place.PlaceID] = reviews
		report.ReviewsSeen += len(reviews)
	}

	if err := uc.writeSnapshots(ctx, places, reviewsByPlace); err != nil {
		return report, err
	}
	log.Info("collect_complete", "places", len(places), "reviews", report.ReviewsSeen)
	return report, nil
}

func (uc *CollectUseCase) discover(ctx context.Context, log *slog.Logger) ([]domain.PlaceResult, int, error) {
	query := fmt.Sprintf("restaurants in %s", uc.cfg.Locality)
	locality := strings.ToLower(uc.cfg.Locality)

	seen := make(map[string]struct{})
	var kept []domain.PlaceResult
	discovered := 0

	for offset := 0; offset <= searchOffsetCap && len(kept) < uc.cfg.MaxPlaces; offset += searchPageSize {
		page, err := uc.search.SearchPlaces(ctx, query, offset)
		if err != nil {
			return nil, discovered, fmt.Errorf("search places (offset %d): %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		for _, place := range page {
			discovered++
			if !strings.Contains(strings.ToLower(place.Address), locality) {
				log.Debug("skipping_out_of_locality", "title", place.Title, "address", place.Address)
				continue
			}
			if _, dup := seen[place.PlaceID]; dup {
				continue
			}
			seen[place.PlaceID] = struct{}{}
			kept = append(kept, place)
			if len(kept) == uc.cfg.MaxPlaces {
				break
			}
		}

		if len(page) < searchPageSize {
			break
		}
	}
	return kept, discovered, nil
}

func (uc *CollectUseCase) writeSnapshots(
	ctx context.Context,
	places []domain.PlaceResult,
	reviewsByPlace map[string][]domain.PlaceReview,
) error {
	bare := make([]domain.PlaceResult, len(places))
	for i, place := range places {
		place.Reviews = nil
		bare[i] = place
	}

	if err := uc.snapshots.WriteJSON(ctx, SnapshotRestaurants, bare); err != nil {
		return fmt.Errorf("write %s: %w", SnapshotRestaurants, err)
	}
	if err := uc.snapshots.WriteJSON(ctx, SnapshotReviewsMap, reviewsByPlace); err != nil {
		return fmt.Errorf("write %s: %w", SnapshotReviewsMap, err)
	}
	if err := uc.snapshots.WriteJSON(ctx, SnapshotComplete, places); err != nil {
		return fmt.Errorf("write %s: %w", SnapshotComplete, err)
	}
	return nil
}
