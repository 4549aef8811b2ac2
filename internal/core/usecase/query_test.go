package usecase

import (
	"context"
	"testing"

	"halalradar/internal/core/domain"
)

func TestSummarizeClassificationMapping(t *testing.T) {
	cases := []struct {
		status domain.HalalStatus
		want   domain.DisplayClass
	}{
		{domain.HalalCertified, domain.ClassVerified},
		{domain.HalalPartial, domain.ClassProbable},
		{domain.HalalMuscleMeat, domain.ClassProbable},
		{domain.HalalMixed, domain.ClassOptions},
		{domain.HalalUnknown, domain.ClassUnconfirmed},
		{domain.NotHalal, domain.ClassUnconfirmed},
	}
	for _, tc := range cases {
		summary := Summarize(domain.Restaurant{HalalStatus: tc.status})
		if summary.Classification != tc.want {
			t.Fatalf("status %q: got %q, want %q", tc.status, summary.Classification, tc.want)
		}
	}
}

func TestSummarizeEvidenceCapAndZabiha(t *testing.T) {
	r := domain.Restaurant{
		HalalStatus: domain.HalalCertified,
		Reviews: []domain.Review{
			{Text: "Fully halal menu"},
			{Text: "Certified Zabiha meat here"},
			{Text: "The pork-free kitchen is great"},
			{Text: "No alcohol served"},
			{Text: "Best halal burgers"},
			{Text: "Muslim-owned, halal everything"},
			{Text: "Lovely decor"}, // no keyword, never evidence
		},
	}

	summary := Summarize(r)
	if len(summary.HalalReviews) != 5 {
		t.Fatalf("expected evidence capped at 5, got %d", len(summary.HalalReviews))
	}
	if !summary.MentionsZabiha {
		t.Fatalf("expected mentionsZabiha true")
	}
}

func TestSummarizeZabihaOutsideEvidenceSample(t *testing.T) {
	// "zabiha" only appears in a review beyond the evidence cap; the flag is
	// defined over the evidence sample, not the whole review set.
	r := domain.Restaurant{
		Reviews: []domain.Review{
			{Text: "halal 1"}, {Text: "halal 2"}, {Text: "halal 3"},
			{Text: "halal 4"}, {Text: "halal 5"},
			{Text: "zabiha only mentioned here"},
		},
	}
	summary := Summarize(r)
	if summary.MentionsZabiha {
		t.Fatalf("zabiha outside the evidence sample must not set the flag")
	}
}

func TestSummarizeNoEvidenceReviews(t *testing.T) {
	summary := Summarize(domain.Restaurant{
		HalalStatus: domain.HalalUnknown,
		Reviews:     []domain.Review{{Text: "Great fries"}},
	})
	if summary.HalalReviews == nil || len(summary.HalalReviews) != 0 {
		t.Fatalf("expected empty (non-nil) evidence slice, got %#v", summary.HalalReviews)
	}
	if summary.MentionsZabiha {
		t.Fatalf("expected mentionsZabiha false without evidence")
	}
}

func TestAdminListPaginationMath(t *testing.T) {
	repo := newRestaurantRepoFake()
	repo.adminTotal = 45
	repo.adminRows = make([]domain.Restaurant, 5)

	uc := NewQueryUseCase(repo, newReviewRepoFake())
	page, err := uc.AdminList(context.Background(), domain.AdminFilter{Page: 3, Limit: 20})
	if err != nil {
		t.Fatalf("AdminList() error = %v", err)
	}
	if page.Meta.TotalPages != 3 {
		t.Fatalf("expected totalPages 3 for total=45 limit=20, got %d", page.Meta.TotalPages)
	}
	if page.Meta.Total != 45 || page.Meta.Page != 3 || page.Meta.Limit != 20 {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}
	if len(page.Data) != 5 {
		t.Fatalf("expected 5 remaining rows on page 3, got %d", len(page.Data))
	}
}

func TestAdminListPagePastEndIsEmptyWithTotal(t *testing.T) {
	repo := newRestaurantRepoFake()
	repo.adminTotal = 45
	repo.adminRows = nil

	uc := NewQueryUseCase(repo, newReviewRepoFake())
	page, err := uc.AdminList(context.Background(), domain.AdminFilter{Page: 4, Limit: 20})
	if err != nil {
		t.Fatalf("AdminList() error = %v", err)
	}
	if len(page.Data) != 0 {
		t.Fatalf("expected empty data past the end, got %d rows", len(page.Data))
	}
	if page.Data == nil {
		t.Fatalf("data must encode as [] not null")
	}
	if page.Meta.Total != 45 {
		t.Fatalf("meta.total must still be 45, got %d", page.Meta.Total)
	}
}

func TestAdminListAppliesDefaults(t *testing.T) {
	repo := newRestaurantRepoFake()
	uc := NewQueryUseCase(repo, newReviewRepoFake())

	if _, err := uc.AdminList(context.Background(), domain.AdminFilter{}); err != nil {
		t.Fatalf("AdminList() error = %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != 20 {
		t.Fatalf("expected page=1 limit=20 defaults, got %+v", repo.lastFilter)
	}
}

func TestAdminGetAttachesRecentReviews(t *testing.T) {
	repo := newRestaurantRepoFake()
	repo.byID[5] = &domain.Restaurant{ID: 5, Name: "Tandoor"}
	reviews := newReviewRepoFake()
	for i := 0; i < 60; i++ {
		reviews.reviews[5] = append(reviews.reviews[5], domain.Review{ID: int64(i), RestaurantID: 5})
	}

	uc := NewQueryUseCase(repo, reviews)
	got, err := uc.AdminGet(context.Background(), 5)
	if err != nil {
		t.Fatalf("AdminGet() error = %v", err)
	}
	if len(got.Reviews) != 50 {
		t.Fatalf("expected 50 most-recent reviews, got %d", len(got.Reviews))
	}
}

func TestAdminGetNotFound(t *testing.T) {
	uc := NewQueryUseCase(newRestaurantRepoFake(), newReviewRepoFake())
	_, err := uc.AdminGet(context.Background(), 404)
	if err == nil || !domain.IsKind(err, domain.ErrRestaurantNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestListSummariesEmptyStore(t *testing.T) {
	uc := NewQueryUseCase(newRestaurantRepoFake(), newReviewRepoFake())
	summaries, err := uc.ListSummaries(context.Background())
	if err != nil {
		t.Fatalf("ListSummaries() error = %v", err)
	}
	if summaries == nil || len(summaries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", summaries)
	}
}
