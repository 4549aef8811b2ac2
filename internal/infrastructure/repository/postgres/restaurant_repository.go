package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"halalradar/internal/core/domain"
)

type RestaurantRepository struct {
	db *sql.DB
}

func NewRestaurantRepository(db *sql.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *RestaurantRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082901)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS restaurants (
	id BIGSERIAL PRIMARY KEY,
	place_id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	user_ratings_total INTEGER NOT NULL DEFAULT 0,
	price_level TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	google_maps_url TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_halal BOOLEAN NOT NULL DEFAULT FALSE,
	halal_status TEXT NOT NULL DEFAULT 'unknown',
	alcohol_status TEXT NOT NULL DEFAULT 'unknown',
	is_potential_halal BOOLEAN NOT NULL DEFAULT FALSE,
	dietary_labels JSONB NOT NULL DEFAULT '[]'::jsonb,
	data JSONB,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS reviews (
	id BIGSERIAL PRIMARY KEY,
	restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	review_id TEXT NOT NULL UNIQUE,
	reviewer_name TEXT NOT NULL DEFAULT '',
	reviewer_photo_url TEXT NOT NULL DEFAULT '',
	rating INTEGER NOT NULL DEFAULT 0,
	text TEXT NOT NULL DEFAULT '',
	published_at_date TIMESTAMPTZ,
	response_from_owner_text TEXT NOT NULL DEFAULT '',
	response_from_owner_date TIMESTAMPTZ,
	data JSONB
);

CREATE TABLE IF NOT EXISTS ai_analysis_logs (
	id BIGSERIAL PRIMARY KEY,
	restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	analysis_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	model_used TEXT NOT NULL,
	prompt_used TEXT NOT NULL,
	raw_response JSONB
);

CREATE INDEX IF NOT EXISTS idx_restaurants_halal_status ON restaurants(halal_status);
CREATE INDEX IF NOT EXISTS idx_restaurants_potential ON restaurants(is_potential_halal);
CREATE INDEX IF NOT EXISTS idx_reviews_restaurant_id ON reviews(restaurant_id);
CREATE INDEX IF NOT EXISTS idx_analysis_logs_restaurant_id ON ai_analysis_logs(restaurant_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Upsert inserts a restaurant or refreshes its listing fields by place_id.
// Compliance columns are left untouched on conflict so re-imports never
// clobber an existing assessment.
func (r *RestaurantRepository) Upsert(ctx context.Context, rest *domain.Restaurant) (int64, error) {
	labelsJSON, err := json.Marshal(labelsOrEmpty(rest.DietaryLabels))
	if err != nil {
		return 0, fmt.Errorf("marshal dietary labels: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
INSERT INTO restaurants (
	place_id, name, address, description, category, rating, user_ratings_total,
	price_level, website, phone, google_maps_url, latitude, longitude,
	is_halal, halal_status, alcohol_status, is_potential_halal, dietary_labels,
	data, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
ON CONFLICT (place_id) DO UPDATE SET
	name = EXCLUDED.name,
	address = EXCLUDED.address,
	description = EXCLUDED.description,
	category = EXCLUDED.category,
	rating = EXCLUDED.rating,
	user_ratings_total = EXCLUDED.user_ratings_total,
	price_level = EXCLUDED.price_level,
	website = EXCLUDED.website,
	phone = EXCLUDED.phone,
	google_maps_url = EXCLUDED.google_maps_url,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	data = EXCLUDED.data,
	updated_at = EXCLUDED.updated_at
RETURNING id
`,
		rest.PlaceID, rest.Name, rest.Address, rest.Description, rest.Category,
		rest.Rating, rest.UserRatingsTotal, rest.PriceLevel, rest.Website, rest.Phone,
		rest.GoogleMapsURL, rest.Latitude, rest.Longitude,
		rest.IsHalal, string(rest.HalalStatus), string(rest.AlcoholStatus),
		rest.IsPotentialHalal, labelsJSON, nullableJSON(rest.Data), time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert restaurant: %w", err)
	}
	return id, nil
}

const restaurantColumns = `
id, place_id, name, address, description, category, rating, user_ratings_total,
price_level, website, phone, google_maps_url, latitude, longitude,
is_halal, halal_status, alcohol_status, is_potential_halal, dietary_labels, updated_at
`

func (r *RestaurantRepository) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+restaurantColumns+`
FROM restaurants
WHERE id = $1
`, id)

	rest, err := scanRestaurantRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrRestaurantNotFound, "get restaurant", fmt.Errorf("id=%d", id))
		}
		return nil, fmt.Errorf("get restaurant by id: %w", err)
	}
	return &rest, nil
}

func (r *RestaurantRepository) ListScanTargets(ctx context.Context) ([]domain.ScanTarget, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, category, halal_status
FROM restaurants
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list scan targets: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ScanTarget, 0)
	for rows.Next() {
		var t domain.ScanTarget
		var status string
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &status); err != nil {
			return nil, fmt.Errorf("scan target row: %w", err)
		}
		t.HalalStatus = domain.HalalStatus(status)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan targets: %w", err)
	}
	return out, nil
}

func (r *RestaurantRepository) SetPotentialHalal(ctx context.Context, id int64, potential bool) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE restaurants
SET is_potential_halal = $2, updated_at = $3
WHERE id = $1
`, id, potential, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set potential halal: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set potential halal rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrRestaurantNotFound, "set potential halal", fmt.Errorf("id=%d", id))
	}
	return nil
}

// SaveAssessment writes every compliance field in one statement so a
// restaurant can never show a partially applied verdict.
func (r *RestaurantRepository) SaveAssessment(ctx context.Context, id int64, a domain.ComplianceAssessment) error {
	labelsJSON, err := json.Marshal(labelsOrEmpty(a.DietaryLabels))
	if err != nil {
		return fmt.Errorf("marshal dietary labels: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE restaurants
SET is_halal = $2, halal_status = $3, alcohol_status = $4, dietary_labels = $5, updated_at = $6
WHERE id = $1
`, id, a.IsHalal, string(a.HalalStatus), string(a.AlcoholStatus), labelsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save assessment rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrRestaurantNotFound, "save assessment", fmt.Errorf("id=%d", id))
	}
	return nil
}

func (r *RestaurantRepository) ListPendingAnalysis(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+restaurantColumns+`
FROM restaurants
WHERE halal_status = 'unknown' AND is_potential_halal = TRUE
ORDER BY id
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending analysis: %w", err)
	}
	defer rows.Close()

	out, err := collectRestaurants(rows)
	if err != nil {
		return nil, fmt.Errorf("iterate pending analysis: %w", err)
	}
	return out, nil
}

// ListWithReviews returns every restaurant with a capped, newest-first
// sample of its reviews attached.
func (r *RestaurantRepository) ListWithReviews(ctx context.Context, reviewsPerRestaurant int) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+restaurantColumns+`
FROM restaurants
ORDER BY rating DESC, id
`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	out, err := collectRestaurants(rows)
	if err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}

	reviewRows, err := r.db.QueryContext(ctx, `
SELECT restaurant_id, review_id, reviewer_name, rating, text, published_at_date
FROM (
	SELECT restaurant_id, review_id, reviewer_name, rating, text, published_at_date,
		ROW_NUMBER() OVER (PARTITION BY restaurant_id ORDER BY published_at_date DESC NULLS LAST) AS rn
	FROM reviews
) ranked
WHERE rn <= $1
`, reviewsPerRestaurant)
	if err != nil {
		return nil, fmt.Errorf("list joined reviews: %w", err)
	}
	defer reviewRows.Close()

	byRestaurant := make(map[int64][]domain.Review)
	for reviewRows.Next() {
		var rev domain.Review
		if err := reviewRows.Scan(&rev.RestaurantID, &rev.ReviewID, &rev.ReviewerName, &rev.Rating, &rev.Text, &rev.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan joined review: %w", err)
		}
		byRestaurant[rev.RestaurantID] = append(byRestaurant[rev.RestaurantID], rev)
	}
	if err := reviewRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate joined reviews: %w", err)
	}

	for i := range out {
		out[i].Reviews = byRestaurant[out[i].ID]
	}
	return out, nil
}

func (r *RestaurantRepository) AdminList(ctx context.Context, filter domain.AdminFilter) ([]domain.Restaurant, int, error) {
	where := "WHERE 1=1"
	args := make([]any, 0, 4)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d)", n, n, n)
	}
	if filter.Zip != "" {
		args = append(args, "%"+filter.Zip+"%")
		where += fmt.Sprintf(" AND address ILIKE $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurants "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count admin restaurants: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
SELECT `+restaurantColumns+`
FROM restaurants
%s
ORDER BY rating DESC, id
LIMIT $%d OFFSET $%d
`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list admin restaurants: %w", err)
	}
	defer rows.Close()

	out, err := collectRestaurants(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("iterate admin restaurants: %w", err)
	}
	return out, total, nil
}

type restaurantScanner interface {
	Scan(dest ...interface{}) error
}

func scanRestaurantRow(row restaurantScanner) (domain.Restaurant, error) {
	var rest domain.Restaurant
	var halalStatus, alcoholStatus string
	var labelsRaw []byte
	err := row.Scan(
		&rest.ID,
		&rest.PlaceID,
		&rest.Name,
		&rest.Address,
		&rest.Description,
		&rest.Category,
		&rest.Rating,
		&rest.UserRatingsTotal,
		&rest.PriceLevel,
		&rest.Website,
		&rest.Phone,
		&rest.GoogleMapsURL,
		&rest.Latitude,
		&rest.Longitude,
		&rest.IsHalal,
		&halalStatus,
		&alcoholStatus,
		&rest.IsPotentialHalal,
		&labelsRaw,
		&rest.UpdatedAt,
	)
	if err != nil {
		return domain.Restaurant{}, err
	}
	if err := json.Unmarshal(labelsRaw, &rest.DietaryLabels); err != nil {
		return domain.Restaurant{}, fmt.Errorf("unmarshal dietary labels: %w", err)
	}
	rest.HalalStatus = domain.HalalStatus(halalStatus)
	rest.AlcoholStatus = domain.AlcoholStatus(alcoholStatus)
	return rest, nil
}

func collectRestaurants(rows *sql.Rows) ([]domain.Restaurant, error) {
	out := make([]domain.Restaurant, 0)
	for rows.Next() {
		rest, err := scanRestaurantRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func labelsOrEmpty(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
