package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"halalradar/internal/core/domain"
)

type restaurantRepoFake struct {
	targets        []domain.ScanTarget
	listTargetsErr error

	flags      map[int64]bool
	setFlagErr map[int64]error

	byID   map[int64]*domain.Restaurant
	getErr error

	saved   map[int64]domain.ComplianceAssessment
	saveErr error

	pending    []domain.Restaurant
	pendingErr error

	withReviews []domain.Restaurant

	adminRows  []domain.Restaurant
	adminTotal int
	adminErr   error
	lastFilter domain.AdminFilter

	upserted  []*domain.Restaurant
	upsertIDs map[string]int64
}

func newRestaurantRepoFake() *restaurantRepoFake {
	return &restaurantRepoFake{
		flags:     map[int64]bool{},
		setFlagErr: map[int64]error{},
		byID:      map[int64]*domain.Restaurant{},
		saved:     map[int64]domain.ComplianceAssessment{},
		upsertIDs: map[string]int64{},
	}
}

func (f *restaurantRepoFake) Upsert(_ context.Context, r *domain.Restaurant) (int64, error) {
	copied := *r
	f.upserted = append(f.upserted, &copied)
	id, ok := f.upsertIDs[r.PlaceID]
	if !ok {
		id = int64(len(f.upsertIDs) + 1)
		f.upsertIDs[r.PlaceID] = id
	}
	return id, nil
}

func (f *restaurantRepoFake) GetByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrRestaurantNotFound, "get restaurant", fmt.Errorf("id %d", id))
	}
	copied := *r
	return &copied, nil
}

func (f *restaurantRepoFake) ListScanTargets(context.Context) ([]domain.ScanTarget, error) {
	if f.listTargetsErr != nil {
		return nil, f.listTargetsErr
	}
	return f.targets, nil
}

func (f *restaurantRepoFake) SetPotentialHalal(_ context.Context, id int64, potential bool) error {
	if err := f.setFlagErr[id]; err != nil {
		return err
	}
	f.flags[id] = potential
	return nil
}

func (f *restaurantRepoFake) SaveAssessment(_ context.Context, id int64, a domain.ComplianceAssessment) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[id] = a
	return nil
}

func (f *restaurantRepoFake) ListPendingAnalysis(_ context.Context, limit int) ([]domain.Restaurant, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *restaurantRepoFake) ListWithReviews(context.Context, int) ([]domain.Restaurant, error) {
	return f.withReviews, nil
}

func (f *restaurantRepoFake) AdminList(_ context.Context, filter domain.AdminFilter) ([]domain.Restaurant, int, error) {
	f.lastFilter = filter
	if f.adminErr != nil {
		return nil, 0, f.adminErr
	}
	return f.adminRows, f.adminTotal, nil
}

type reviewRepoFake struct {
	matches  map[int64]bool
	matchErr map[int64]error

	reviews map[int64][]domain.Review
	listErr error

	upserted []*domain.Review
}

func newReviewRepoFake() *reviewRepoFake {
	return &reviewRepoFake{
		matches:  map[int64]bool{},
		matchErr: map[int64]error{},
		reviews:  map[int64][]domain.Review{},
	}
}

func (f *reviewRepoFake) Upsert(_ context.Context, rev *domain.Review) error {
	copied := *rev
	f.upserted = append(f.upserted, &copied)
	return nil
}

func (f *reviewRepoFake) ListByRestaurant(_ context.Context, restaurantID int64, limit int) ([]domain.Review, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	reviews := f.reviews[restaurantID]
	if limit > 0 && len(reviews) > limit {
		return reviews[:limit], nil
	}
	return reviews, nil
}

func (f *reviewRepoFake) HasKeywordMatch(_ context.Context, restaurantID int64, _ []string) (bool, error) {
	if err := f.matchErr[restaurantID]; err != nil {
		return false, err
	}
	return f.matches[restaurantID], nil
}

type analysisLogRepoFake struct {
	entries   []*domain.AnalysisLog
	insertErr error
}

func (f *analysisLogRepoFake) Insert(_ context.Context, entry *domain.AnalysisLog) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *entry
	f.entries = append(f.entries, &copied)
	return nil
}

type classifierFake struct {
	assessment domain.ComplianceAssessment
	err        error
	calls      int
	samples    []domain.ReviewSample
}

func (f *classifierFake) Classify(_ context.Context, _, _ string, samples []domain.ReviewSample) (domain.ComplianceAssessment, error) {
	f.calls++
	f.samples = samples
	if f.err != nil {
		return domain.ComplianceAssessment{}, f.err
	}
	return f.assessment, nil
}

func (f *classifierFake) Model() string { return "gemini-2.0-flash" }

type queueFake struct {
	published  []int64
	publishErr error
}

func (f *queueFake) PublishRestaurantFlagged(_ context.Context, id int64) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, id)
	return nil
}

func (f *queueFake) SubscribeRestaurantFlagged(context.Context, func(context.Context, int64) error) error {
	return nil
}

type analyzerFake struct {
	errs  map[int64]error
	calls []int64
}

func (f *analyzerFake) AnalyzeByID(_ context.Context, id int64) error {
	f.calls = append(f.calls, id)
	return f.errs[id]
}

type searchFake struct {
	pages     map[int][]domain.PlaceResult
	searchErr error

	reviews   map[string][]domain.PlaceReview
	fetchErrs map[string]error
}

func (f *searchFake) SearchPlaces(_ context.Context, _ string, offset int) ([]domain.PlaceResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.pages[offset], nil
}

func (f *searchFake) FetchReviews(_ context.Context, placeID string) ([]domain.PlaceReview, error) {
	if err := f.fetchErrs[placeID]; err != nil {
		return nil, err
	}
	return f.reviews[placeID], nil
}

type snapshotStoreFake struct {
	docs     map[string]json.RawMessage
	writeErr error
	readErr  error
}

func newSnapshotStoreFake() *snapshotStoreFake {
	return &snapshotStoreFake{docs: map[string]json.RawMessage{}}
}

func (f *snapshotStoreFake) WriteJSON(_ context.Context, name string, v any) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.docs[name] = raw
	return nil
}

func (f *snapshotStoreFake) ReadJSON(_ context.Context, name string, v any) error {
	if f.readErr != nil {
		return f.readErr
	}
	raw, ok := f.docs[name]
	if !ok {
		return fmt.Errorf("snapshot %s not found", name)
	}
	return json.Unmarshal(raw, v)
}
