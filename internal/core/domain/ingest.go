package domain

import "time"

// PlaceResult is the normalized raw-record shape produced by the collector
// and consumed by the importer. Field names follow the snapshot JSON layout.
type PlaceResult struct {
	PlaceID      string        `json:"placeId"`
	Title        string        `json:"title"`
	Address      string        `json:"address"`
	Description  string        `json:"description,omitempty"`
	CategoryName string        `json:"categoryName,omitempty"`
	TotalScore   float64       `json:"totalScore,omitempty"`
	ReviewsCount int           `json:"reviewsCount,omitempty"`
	Price        string        `json:"price,omitempty"`
	Website      string        `json:"website,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	URL          string        `json:"url,omitempty"`
	Location     *GeoPoint     `json:"location,omitempty"`
	Reviews      []PlaceReview `json:"reviews,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceReview is one raw review attached to a PlaceResult.
type PlaceReview struct {
	ReviewID              string     `json:"reviewId"`
	Name                  string     `json:"name,omitempty"`
	ReviewerPhotoURL      string     `json:"reviewerPhotoUrl,omitempty"`
	Stars                 int        `json:"stars,omitempty"`
	Text                  string     `json:"text,omitempty"`
	PublishedAtDate       *time.Time `json:"publishedAtDate,omitempty"`
	ResponseFromOwnerText string     `json:"responseFromOwnerText,omitempty"`
	ResponseFromOwnerDate *time.Time `json:"responseFromOwnerDate,omitempty"`
}

// ScanTarget is the projection the scanner iterates: no review bodies,
// just enough to evaluate the category signal and decide whether a
// flagged restaurant still needs classification.
type ScanTarget struct {
	ID          int64
	Name        string
	Category    string
	HalalStatus HalalStatus
}
