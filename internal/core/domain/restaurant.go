package domain

import (
	"encoding/json"
	"time"
)

type Restaurant struct {
	ID               int64           `json:"id"`
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Description      string          `json:"description,omitempty"`
	Category         string          `json:"category,omitempty"`
	Rating           float64         `json:"rating"`
	UserRatingsTotal int             `json:"user_ratings_total"`
	PriceLevel       string          `json:"price_level,omitempty"`
	Website          string          `json:"website,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	GoogleMapsURL    string          `json:"google_maps_url,omitempty"`
	Latitude         float64         `json:"latitude,omitempty"`
	Longitude        float64         `json:"longitude,omitempty"`
	IsHalal          bool            `json:"is_halal"`
	HalalStatus      HalalStatus     `json:"halal_status"`
	AlcoholStatus    AlcoholStatus   `json:"alcohol_status"`
	IsPotentialHalal bool            `json:"is_potential_halal"`
	DietaryLabels    []string        `json:"dietary_labels"`
	Data             json.RawMessage `json:"data,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Populated only by read paths that join reviews.
	Reviews []Review `json:"reviews,omitempty"`
}

type Review struct {
	ID                int64           `json:"id"`
	RestaurantID      int64           `json:"restaurant_id"`
	ReviewID          string          `json:"review_id"`
	ReviewerName      string          `json:"reviewer_name,omitempty"`
	ReviewerPhotoURL  string          `json:"reviewer_photo_url,omitempty"`
	Rating            int             `json:"rating"`
	Text              string          `json:"text"`
	PublishedAt       *time.Time      `json:"published_at_date,omitempty"`
	OwnerResponseText string          `json:"response_from_owner_text,omitempty"`
	OwnerResponseAt   *time.Time      `json:"response_from_owner_date,omitempty"`
	Data              json.RawMessage `json:"data,omitempty"`
}

// AnalysisLog is one append-only audit row per classification attempt.
type AnalysisLog struct {
	ID           int64           `json:"id"`
	RestaurantID int64           `json:"restaurant_id"`
	AnalysisDate time.Time       `json:"analysis_date"`
	ModelUsed    string          `json:"model_used"`
	PromptUsed   string          `json:"prompt_used"`
	RawResponse  json.RawMessage `json:"raw_response"`
}
