package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"halalradar/internal/core/domain"
	"halalradar/internal/core/ports"
)

// Category substrings that mark a cuisine as worth classifying on their own.
var potentialCategories = []string{
	"halal",
	"middle eastern",
	"mediterranean",
	"pakistani",
	"indian",
	"afghan",
}

// Review keywords for the cheap pre-filter. Broader than the relevance set
// used by the classifier: permit/certified mentions are scan signals too.
var scanKeywords = []string{
	"halal", "zabiha", "muslim", "alcohol", "bar", "wine",
	"beer", "pork", "haram", "bacon", "permit", "certified",
}

type ScanUseCase struct {
	restaurants ports.RestaurantRepository
	reviews     ports.ReviewRepository
	queue       ports.MessageQueue
}

// NewScanUseCase builds the scanner. queue may be nil; flagged ids are then
// not published.
func NewScanUseCase(
	restaurants ports.RestaurantRepository,
	reviews ports.ReviewRepository,
	queue ports.MessageQueue,
) *ScanUseCase {
	return &ScanUseCase{
		restaurants: restaurants,
		reviews:     reviews,
		queue:       queue,
	}
}

// ScanAll re-evaluates isPotentialHalal for every restaurant. The flag is
// written explicitly both ways so a re-run un-flags restaurants whose review
// set changed. Only flagged restaurants whose halal status is still unknown
// are published for classification; settled verdicts keep their assessment.
// One restaurant failing does not stop the scan.
func (uc *ScanUseCase) ScanAll(ctx context.Context) (ports.ScanReport, error) {
	targets, err := uc.restaurants.ListScanTargets(ctx)
	if err != nil {
		return ports.ScanReport{}, fmt.Errorf("list scan targets: %w", err)
	}

	report := ports.ScanReport{Scanned: len(targets)}
	var flaggedIDs []int64

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		potential, err := uc.evaluate(ctx, target)
		if err == nil {
			err = uc.restaurants.SetPotentialHalal(ctx, target.ID, potential)
		}
		if err != nil {
			report.Failed++
			slog.Error("scan_restaurant_failed", "restaurant_id", target.ID, "name", target.Name, "error", err)
			continue
		}

		if potential {
			report.Flagged++
			if target.HalalStatus == domain.HalalUnknown {
				flaggedIDs = append(flaggedIDs, target.ID)
			}
		} else {
			report.Unflagged++
		}
	}

	uc.publishFlagged(ctx, flaggedIDs)
	return report, nil
}

func (uc *ScanUseCase) evaluate(ctx context.Context, target domain.ScanTarget) (bool, error) {
	if categorySignal(target.Category) {
		return true, nil
	}
	match, err := uc.reviews.HasKeywordMatch(ctx, target.ID, scanKeywords)
	if err != nil {
		return false, fmt.Errorf("review keyword match: %w", err)
	}
	return match, nil
}

func (uc *ScanUseCase) publishFlagged(ctx context.Context, ids []int64) {
	if uc.queue == nil {
		return
	}
	for _, id := range ids {
		if err := uc.queue.PublishRestaurantFlagged(ctx, id); err != nil {
			slog.Warn("publish_flagged_failed", "restaurant_id", id, "error", err)
		}
	}
}

func categorySignal(category string) bool {
	lowered := strings.ToLower(category)
	for _, cuisine := range potentialCategories {
		if strings.Contains(lowered, cuisine) {
			return true
		}
	}
	return false
}
