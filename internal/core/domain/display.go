package domain

// RestaurantSummary is the read-time display record for the public listing.
// Not persisted; computed from a restaurant and a capped sample of its
// reviews.
type RestaurantSummary struct {
	ID             int64        `json:"id"`
	PlaceID        string       `json:"place_id"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	Category       string       `json:"category,omitempty"`
	Rating         float64      `json:"rating"`
	IsHalal        bool         `json:"isHalal"`
	Classification DisplayClass `json:"classification"`
	HalalReviews   []string     `json:"halalReviews"`
	MentionsZabiha bool         `json:"mentionsZabiha"`
}

type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// AdminPage is one page of the admin console listing.
type AdminPage struct {
	Data []Restaurant `json:"data"`
	Meta PageMeta     `json:"meta"`
}

// AdminFilter narrows the admin listing. Search matches name, description
// and category; Zip is a substring match against the address.
type AdminFilter struct {
	Search string
	Zip    string
	Page   int
	Limit  int
}
