package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"halalradar/internal/core/domain"
)

func newMockRepo(t *testing.T) (*RestaurantRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRestaurantRepository(db), mock
}

func restaurantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "place_id", "name", "address", "description", "category", "rating",
		"user_ratings_total", "price_level", "website", "phone", "google_maps_url",
		"latitude", "longitude", "is_halal", "halal_status", "alcohol_status",
		"is_potential_halal", "dietary_labels", "updated_at",
	})
}

func TestUpsertReturnsRowID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO restaurants`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := repo.Upsert(context.Background(), &domain.Restaurant{
		PlaceID:       "ChIJabc",
		Name:          "Shalimar",
		HalalStatus:   domain.HalalUnknown,
		AlcoholStatus: domain.AlcoholUnknown,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetByIDMapsNoRowsToNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM restaurants`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !domain.IsKind(err, domain.ErrRestaurantNotFound) {
		t.Errorf("err = %v, want ErrRestaurantNotFound", err)
	}
}

func TestGetByIDScansLabels(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM restaurants`).
		WithArgs(int64(7)).
		WillReturnRows(restaurantRows().AddRow(
			int64(7), "ChIJabc", "Shalimar", "123 Main St", "", "Pakistani restaurant",
			4.5, 210, "$$", "", "", "", 37.66, -121.87,
			true, "certified", "none", true, []byte(`["halal","zabiha"]`), time.Now(),
		))

	rest, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rest.HalalStatus != domain.HalalCertified {
		t.Errorf("HalalStatus = %q", rest.HalalStatus)
	}
	if len(rest.DietaryLabels) != 2 || rest.DietaryLabels[0] != "halal" {
		t.Errorf("DietaryLabels = %v", rest.DietaryLabels)
	}
}

func TestSaveAssessmentNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE restaurants`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveAssessment(context.Background(), 55, domain.ComplianceAssessment{
		IsHalal:       true,
		HalalStatus:   domain.HalalPartial,
		AlcoholStatus: domain.AlcoholNone,
	})
	if !domain.IsKind(err, domain.ErrRestaurantNotFound) {
		t.Errorf("err = %v, want ErrRestaurantNotFound", err)
	}
}

func TestSaveAssessmentWritesAllFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE restaurants\s+SET is_halal = \$2, halal_status = \$3, alcohol_status = \$4, dietary_labels = \$5, updated_at = \$6`).
		WithArgs(int64(3), true, "mixed", "beer_wine", []byte(`["halal options"]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveAssessment(context.Background(), 3, domain.ComplianceAssessment{
		IsHalal:       true,
		HalalStatus:   domain.HalalMixed,
		AlcoholStatus: domain.AlcoholBeerWine,
		DietaryLabels: []string{"halal options"},
	})
	if err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSetPotentialHalalNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE restaurants`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPotentialHalal(context.Background(), 1, true)
	if !domain.IsKind(err, domain.ErrRestaurantNotFound) {
		t.Errorf("err = %v, want ErrRestaurantNotFound", err)
	}
}

func TestListScanTargetsCarriesHalalStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, name, category, halal_status\s+FROM restaurants`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "halal_status"}).
			AddRow(int64(1), "Kabob Corner", "Afghan restaurant", "certified").
			AddRow(int64(2), "Noodle Bar", "Asian restaurant", "unknown"))

	out, err := repo.ListScanTargets(context.Background())
	if err != nil {
		t.Fatalf("ListScanTargets: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d targets, want 2", len(out))
	}
	if out[0].HalalStatus != domain.HalalCertified {
		t.Errorf("target 1 status = %q, want certified", out[0].HalalStatus)
	}
	if out[1].HalalStatus != domain.HalalUnknown {
		t.Errorf("target 2 status = %q, want unknown", out[1].HalalStatus)
	}
}

func TestListPendingAnalysisFiltersUnknownPotential(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`WHERE halal_status = 'unknown' AND is_potential_halal = TRUE`).
		WithArgs(5).
		WillReturnRows(restaurantRows().AddRow(
			int64(1), "p1", "A", "", "", "", 0.0, 0, "", "", "", "", 0.0, 0.0,
			false, "unknown", "unknown", true, []byte(`[]`), time.Now(),
		))

	out, err := repo.ListPendingAnalysis(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListPendingAnalysis: %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Errorf("got %d rows", len(out))
	}
}

func TestAdminListAppliesFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM restaurants WHERE 1=1 AND \(name ILIKE \$1 OR description ILIKE \$1 OR category ILIKE \$1\) AND address ILIKE \$2`).
		WithArgs("%kabob%", "%94566%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM restaurants\s+WHERE 1=1 AND \(name ILIKE \$1`).
		WithArgs("%kabob%", "%94566%", 20, 0).
		WillReturnRows(restaurantRows().AddRow(
			int64(9), "p9", "Kabob House", "1 Oak St, Pleasanton, CA 94566", "", "Afghan restaurant",
			4.2, 80, "", "", "", "", 0.0, 0.0,
			false, "unknown", "unknown", true, []byte(`[]`), time.Now(),
		))

	rows, total, err := repo.AdminList(context.Background(), domain.AdminFilter{
		Search: "kabob", Zip: "94566", Page: 1, Limit: 20,
	})
	if err != nil {
		t.Fatalf("AdminList: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Errorf("total=%d rows=%d", total, len(rows))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAdminListOffsetFromPage(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM restaurants`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(`FROM restaurants`).
		WithArgs(20, 40).
		WillReturnRows(restaurantRows())

	_, total, err := repo.AdminList(context.Background(), domain.AdminFilter{Page: 3, Limit: 20})
	if err != nil {
		t.Fatalf("AdminList: %v", err)
	}
	if total != 45 {
		t.Errorf("total = %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
