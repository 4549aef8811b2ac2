package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"halalradar/internal/core/domain"
)

// Client talks to the SerpAPI Google Maps engines. Review fetches are
// paced through a rate limiter so a full harvest stays under the
// provider's burst limits.
type Client struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	reviewLimiter *rate.Limiter
}

func New(baseURL, apiKey string, reviewPause time.Duration) *Client {
	if reviewPause <= 0 {
		reviewPause = 300 * time.Millisecond
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		reviewLimiter: rate.NewLimiter(rate.Every(reviewPause), 1),
	}
}

type searchResponse struct {
	Error        string        `json:"error"`
	LocalResults []localResult `json:"local_results"`
}

type localResult struct {
	DataID      string   `json:"data_id"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Price       string   `json:"price"`
	Website     string   `json:"website"`
	Phone       string   `json:"phone"`
	GPS         gpsPoint `json:"gps_coordinates"`
}

type gpsPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type reviewsResponse struct {
	Error   string       `json:"error"`
	Reviews []serpReview `json:"reviews"`
}

type serpReview struct {
	ReviewID string `json:"review_id"`
	User     struct {
		Name      string `json:"name"`
		Thumbnail string `json:"thumbnail"`
	} `json:"user"`
	Rating  int    `json:"rating"`
	Snippet string `json:"snippet"`
	ISODate string `json:"iso_date"`
	Response struct {
		Snippet string `json:"snippet"`
		ISODate string `json:"iso_date"`
	} `json:"response"`
}

func (c *Client) SearchPlaces(ctx context.Context, query string, offset int) ([]domain.PlaceResult, error) {
	params := url.Values{}
	params.Set("engine", "google_maps")
	params.Set("type", "search")
	params.Set("q", query)
	params.Set("start", strconv.Itoa(offset))

	var response searchResponse
	if err := c.getJSON(ctx, params, &response, "search places"); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, fmt.Errorf("serpapi search: %s", response.Error)
	}

	out := make([]domain.PlaceResult, 0, len(response.LocalResults))
	for _, r := range response.LocalResults {
		out = append(out, domain.PlaceResult{
			PlaceID:      r.DataID,
			Title:        r.Title,
			Address:      r.Address,
			Description:  r.Description,
			CategoryName: r.Type,
			TotalScore:   r.Rating,
			ReviewsCount: r.Reviews,
			Price:        r.Price,
			Website:      r.Website,
			Phone:        r.Phone,
			Location: &domain.GeoPoint{
				Lat: r.GPS.Latitude,
				Lng: r.GPS.Longitude,
			},
		})
	}
	return out, nil
}

func (c *Client) FetchReviews(ctx context.Context, placeID string) ([]domain.PlaceReview, error) {
	if err := c.reviewLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("review fetch pacing: %w", err)
	}

	params := url.Values{}
	params.Set("engine", "google_maps_reviews")
	params.Set("data_id", placeID)

	var response reviewsResponse
	if err := c.getJSON(ctx, params, &response, "fetch reviews"); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, fmt.Errorf("serpapi reviews: %s", response.Error)
	}

	out := make([]domain.PlaceReview, 0, len(response.Reviews))
	for _, r := range response.Reviews {
		name := r.User.Name
		if name == "" {
			name = "Anonymous"
		}
		out = append(out, domain.PlaceReview{
			ReviewID:              r.ReviewID,
			Name:                  name,
			ReviewerPhotoURL:      r.User.Thumbnail,
			Stars:                 r.Rating,
			Text:                  r.Snippet,
			PublishedAtDate:       parseISODate(r.ISODate),
			ResponseFromOwnerText: r.Response.Snippet,
			ResponseFromOwnerDate: parseISODate(r.Response.ISODate),
		})
	}
	return out, nil
}

func parseISODate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func (c *Client) getJSON(ctx context.Context, params url.Values, out any, operation string) error {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "/search.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("serpapi %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			return fmt.Errorf("serpapi %s status: %s", operation, resp.Status)
		}
		return fmt.Errorf("serpapi %s status: %s: %s", operation, resp.Status, msg)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}
