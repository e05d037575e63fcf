package hotel

// SearchArgs is the partially populated argument record decoded from a
// search_hotels tool call. Every field except Destination is optional;
// the search executor applies defaults for whatever is missing.
type SearchArgs struct {
	Destination string `json:"destination"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	Currency    string `json:"currency"`
	StarRating  []int  `json:"starRating"`
}

// Summary is the per-hotel card payload returned to the frontend.
// Built fresh for each request, never cached.
type Summary struct {
	HotelID            string   `json:"hotelId"`
	Name               string   `json:"name"`
	StarRating         float64  `json:"starRating,omitempty"`
	MainPhoto          string   `json:"main_photo"`
	MinRate            *float64 `json:"minRate,omitempty"`
	Currency           string   `json:"currency"`
	ReviewScore        *float64 `json:"reviewScore,omitempty"`
	City               string   `json:"city"`
	Country            string   `json:"country"`
	CancellationPolicy string   `json:"cancellationPolicy,omitempty"`
}
