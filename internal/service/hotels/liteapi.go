package hotels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sarderiftekhar/zzstay-com/internal/config"
)

// Provider is the hotel data collaborator the search executor runs
// against: place resolution, rate search and per-hotel detail lookup.
type Provider interface {
	SearchPlaces(ctx context.Context, textQuery string) ([]Place, error)
	SearchRates(ctx context.Context, params RateSearchParams) ([]RateHotel, error)
	GetHotelDetails(ctx context.Context, hotelID string) (*HotelDetails, error)
}

// Place is one match from the places autocomplete endpoint.
type Place struct {
	PlaceID          string `json:"placeId"`
	DisplayName      string `json:"displayName"`
	FormattedAddress string `json:"formattedAddress"`
}

// Occupancy describes one room's guests.
type Occupancy struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children,omitempty"`
}

// RateSearchParams is the rate search request body, passed through to
// the provider unchanged.
type RateSearchParams struct {
	CheckIn          string      `json:"checkin"`
	CheckOut         string      `json:"checkout"`
	Adults           int         `json:"adults"`
	Children         int         `json:"children"`
	Currency         string      `json:"currency"`
	GuestNationality string      `json:"guestNationality"`
	PlaceID          string      `json:"placeId"`
	Occupancies      []Occupancy `json:"occupancies"`
	IncludeHotelData bool        `json:"includeHotelData"`
	Timeout          int         `json:"timeout"`
	Limit            int         `json:"limit"`
	StarRating       []int       `json:"starRating,omitempty"`
}

// Money is an amount with its currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Rate is a single bookable rate under a room type.
type Rate struct {
	RetailRate struct {
		Total []Money `json:"total"`
	} `json:"retailRate"`
	CancellationPolicies struct {
		RefundableTag string `json:"refundableTag"`
	} `json:"cancellationPolicies"`
}

// RoomType groups rates for one room configuration. Price may appear
// at offer level or nested in a rate's total.
type RoomType struct {
	OfferRetailRate       *Money `json:"offerRetailRate"`
	SuggestedSellingPrice *Money `json:"suggestedSellingPrice"`
	Rates                 []Rate `json:"rates"`
}

// RateHotel is one rate search result. When the search was issued with
// IncludeHotelData the embedded HotelDetails fields arrive inline.
type RateHotel struct {
	HotelID string `json:"hotelId"`
	HotelDetails
	RoomTypes []RoomType `json:"roomTypes"`
}

// HotelDetails is a property record. The provider is inconsistent
// about field names, so both spellings of name, photo and review score
// are mapped and resolved by the accessor methods.
type HotelDetails struct {
	Name            string     `json:"name"`
	HotelName       string     `json:"hotelName"`
	StarRating      float64    `json:"starRating"`
	MainPhoto       string     `json:"main_photo"`
	Thumbnail       string     `json:"thumbnail"`
	Rating          *float64   `json:"rating"`
	ReviewScore     *float64   `json:"reviewScore"`
	City            string     `json:"city"`
	Country         string     `json:"country"`
	HotelFacilities []Facility `json:"hotelFacilities"`
	Facilities      []Facility `json:"facilities"`
}

// DisplayName resolves the property name across both field spellings.
func (d *HotelDetails) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.HotelName
}

// Photo resolves the lead image across both field spellings.
func (d *HotelDetails) Photo() string {
	if d.MainPhoto != "" {
		return d.MainPhoto
	}
	return d.Thumbnail
}

// Score resolves the review score across both field spellings.
func (d *HotelDetails) Score() *float64 {
	if d.Rating != nil {
		return d.Rating
	}
	return d.ReviewScore
}

// FacilityNames flattens the facility list, whichever field carried it.
func (d *HotelDetails) FacilityNames() []string {
	raw := d.HotelFacilities
	if len(raw) == 0 {
		raw = d.Facilities
	}
	names := make([]string, 0, len(raw))
	for _, f := range raw {
		if f.Name != "" {
			names = append(names, f.Name)
		}
	}
	return names
}

// Facility tolerates both provider shapes for a facility entry: a bare
// string, or a record with a name field.
type Facility struct {
	Name string
}

func (f *Facility) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Name = s
		return nil
	}
	var rec struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	f.Name = rec.Name
	return nil
}

// LiteAPIClient implements Provider against the LiteAPI travel API.
type LiteAPIClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewLiteAPIClient builds a provider client from configuration.
func NewLiteAPIClient(cfg config.HotelAPIConfig) *LiteAPIClient {
	return &LiteAPIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

// SearchPlaces resolves free text to candidate places.
func (c *LiteAPIClient) SearchPlaces(ctx context.Context, textQuery string) ([]Place, error) {
	var out struct {
		Data []Place `json:"data"`
	}
	params := url.Values{"textQuery": {textQuery}}
	if err := c.do(ctx, http.MethodGet, "/data/places", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SearchRates queries hotels with live rates.
func (c *LiteAPIClient) SearchRates(ctx context.Context, params RateSearchParams) ([]RateHotel, error) {
	var out struct {
		Data []RateHotel `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/hotels/rates", nil, params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetHotelDetails fetches the full property record for one hotel.
func (c *LiteAPIClient) GetHotelDetails(ctx context.Context, hotelID string) (*HotelDetails, error) {
	var out struct {
		Data HotelDetails `json:"data"`
	}
	params := url.Values{"hotelId": {hotelID}}
	if err := c.do(ctx, http.MethodGet, "/data/hotel", params, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *LiteAPIClient) do(ctx context.Context, method, endpoint string, params url.Values, body, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal hotel API request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build hotel API request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hotel API request: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read hotel API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("hotel API error (%d): %s", resp.StatusCode, firstBytes(text, 200))
	}

	if err := json.Unmarshal(text, out); err != nil {
		return fmt.Errorf("hotel API returned invalid JSON: %s", firstBytes(text, 200))
	}
	return nil
}

func firstBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
