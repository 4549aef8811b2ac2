package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"halalradar/internal/core/domain"
	"halalradar/internal/core/ports"
)

// ImportUseCase upserts a collector snapshot into the relational store.
// Re-importing the same snapshot is idempotent: place_id and review_id are
// the conflict keys, and the second import's field values win.
type ImportUseCase struct {
	restaurants ports.RestaurantRepository
	reviews     ports.ReviewRepository
	snapshots   ports.SnapshotStore
}

func NewImportUseCase(
	restaurants ports.RestaurantRepository,
	reviews ports.ReviewRepository,
	snapshots ports.SnapshotStore,
) *ImportUseCase {
	return &ImportUseCase{
		restaurants: restaurants,
		reviews:     reviews,
		snapshots:   snapshots,
	}
}

func (uc *ImportUseCase) ImportSnapshot(ctx context.Context, name string) (ports.ImportReport, error) {
	var items []domain.PlaceResult
	if err := uc.snapshots.ReadJSON(ctx, name, &items); err != nil {
		return ports.ImportReport{}, fmt.Errorf("read snapshot %s: %w", name, err)
	}

	var report ports.ImportReport
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if item.PlaceID == "" {
			report.Skipped++
			slog.Warn("skipping_item_without_place_id", "title", item.Title)
			continue
		}

		restaurantID, err := uc.upsertRestaurant(ctx, item)
		if err != nil {
			return report, fmt.Errorf("upsert restaurant %s: %w", item.PlaceID, err)
		}
		report.Restaurants++

		imported, err := uc.upsertReviews(ctx, restaurantID, item.Reviews)
		if err != nil {
			return report, fmt.Errorf("upsert reviews for %s: %w", item.PlaceID, err)
		}
		report.Reviews += imported
	}
	return report, nil
}

func (uc *ImportUseCase) upsertRestaurant(ctx context.Context, item domain.PlaceResult) (int64, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return 0, fmt.Errorf("marshal raw item: %w", err)
	}

	restaurant := &domain.Restaurant{
		PlaceID:          item.PlaceID,
		Name:             item.Title,
		Address:          item.Address,
		Description:      item.Description,
		Category:         item.CategoryName,
		Rating:           item.TotalScore,
		UserRatingsTotal: item.ReviewsCount,
		PriceLevel:       item.Price,
		Website:          item.Website,
		Phone:            item.Phone,
		GoogleMapsURL:    item.URL,
		HalalStatus:      domain.HalalUnknown,
		AlcoholStatus:    domain.AlcoholUnknown,
		DietaryLabels:    []string{},
		Data:             raw,
	}
	if item.Location != nil {
		restaurant.Latitude = item.Location.Lat
		restaurant.Longitude = item.Location.Lng
	}
	return uc.restaurants.Upsert(ctx, restaurant)
}

func (uc *ImportUseCase) upsertReviews(ctx context.Context, restaurantID int64, raws []domain.PlaceReview) (int, error) {
	imported := 0
	for _, raw := range raws {
		if raw.ReviewID == "" {
			continue
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return imported, fmt.Errorf("marshal raw review: %w", err)
		}
		review := &domain.Review{
			RestaurantID:      restaurantID,
			ReviewID:          raw.ReviewID,
			ReviewerName:      raw.Name,
			ReviewerPhotoURL:  raw.ReviewerPhotoURL,
			Rating:            raw.Stars,
			Text:              raw.Text,
			PublishedAt:       raw.PublishedAtDate,
			OwnerResponseText: raw.ResponseFromOwnerText,
			OwnerResponseAt:   raw.ResponseFromOwnerDate,
			Data:              data,
		}
		if err := uc.reviews.Upsert(ctx, review); err != nil {
			return imported, fmt.Errorf("upsert review %s: %w", raw.ReviewID, err)
		}
		imported++
	}
	return imported, nil
}
