package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"halalradar/internal/core/domain"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Upsert(ctx context.Context, rev *domain.Review) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (
	restaurant_id, review_id, reviewer_name, reviewer_photo_url, rating, text,
	published_at_date, response_from_owner_text, response_from_owner_date, data
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (review_id) DO UPDATE SET
	restaurant_id = EXCLUDED.restaurant_id,
	reviewer_name = EXCLUDED.reviewer_name,
	reviewer_photo_url = EXCLUDED.reviewer_photo_url,
	rating = EXCLUDED.rating,
	text = EXCLUDED.text,
	published_at_date = EXCLUDED.published_at_date,
	response_from_owner_text = EXCLUDED.response_from_owner_text,
	response_from_owner_date = EXCLUDED.response_from_owner_date,
	data = EXCLUDED.data
`,
		rev.RestaurantID, rev.ReviewID, rev.ReviewerName, rev.ReviewerPhotoURL,
		rev.Rating, rev.Text, rev.PublishedAt, rev.OwnerResponseText,
		rev.OwnerResponseAt, nullableJSON(rev.Data),
	)
	if err != nil {
		return fmt.Errorf("upsert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListByRestaurant(ctx context.Context, restaurantID int64, limit int) ([]domain.Review, error) {
	query := `
SELECT id, restaurant_id, review_id, reviewer_name, reviewer_photo_url, rating, text,
	published_at_date, response_from_owner_text, response_from_owner_date
FROM reviews
WHERE restaurant_id = $1
ORDER BY published_at_date DESC NULLS LAST
`
	args := []any{restaurantID}
	if limit > 0 {
		query += "LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Review, 0)
	for rows.Next() {
		var rev domain.Review
		err := rows.Scan(
			&rev.ID, &rev.RestaurantID, &rev.ReviewID, &rev.ReviewerName, &rev.ReviewerPhotoURL,
			&rev.Rating, &rev.Text, &rev.PublishedAt, &rev.OwnerResponseText, &rev.OwnerResponseAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}

// HasKeywordMatch evaluates keyword presence in the database rather than
// streaming every review back; one EXISTS query per restaurant.
func (r *ReviewRepository) HasKeywordMatch(ctx context.Context, restaurantID int64, keywords []string) (bool, error) {
	if len(keywords) == 0 {
		return false, nil
	}
	patterns := make([]string, len(keywords))
	for i, kw := range keywords {
		patterns[i] = "%" + kw + "%"
	}

	var found bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
	SELECT 1 FROM reviews
	WHERE restaurant_id = $1 AND text ILIKE ANY($2)
)
`, restaurantID, patterns).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("keyword match query: %w", err)
	}
	return found, nil
}
