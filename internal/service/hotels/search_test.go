package hotels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sarderiftekhar/zzstay-com/internal/model/hotel"
)

type fakeProvider struct {
	mu sync.Mutex

	places    []Place
	placesErr error

	rates      []RateHotel
	ratesErr   error
	rateParams RateSearchParams
	rateCalls  int

	details    map[string]*HotelDetails
	detailErrs map[string]error
	detailReqs []string
}

func (f *fakeProvider) SearchPlaces(_ context.Context, _ string) ([]Place, error) {
	return f.places, f.placesErr
}

func (f *fakeProvider) SearchRates(_ context.Context, params RateSearchParams) ([]RateHotel, error) {
	f.rateParams = params
	f.rateCalls++
	return f.rates, f.ratesErr
}

func (f *fakeProvider) GetHotelDetails(_ context.Context, hotelID string) (*HotelDetails, error) {
	f.mu.Lock()
	f.detailReqs = append(f.detailReqs, hotelID)
	f.mu.Unlock()
	if err, ok := f.detailErrs[hotelID]; ok {
		return nil, err
	}
	if det, ok := f.details[hotelID]; ok {
		return det, nil
	}
	return &HotelDetails{}, nil
}

func rateHotel(id, name string, price float64) RateHotel {
	rh := RateHotel{HotelID: id}
	rh.Name = name
	rh.Thumbnail = "https://img.example/" + id + ".jpg"
	if price > 0 {
		rh.RoomTypes = []RoomType{{
			OfferRetailRate: &Money{Amount: price, Currency: "USD"},
		}}
	}
	return rh
}

func TestExecuteNoDestination(t *testing.T) {
	provider := &fakeProvider{}
	exec := NewExecutor(provider, "US")

	result, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "Qwertyuiop123"})
	if err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	if len(result.Hotels) != 0 {
		t.Errorf("hotels = %d, want 0", len(result.Hotels))
	}
	if !strings.Contains(result.Text, "different city") {
		t.Errorf("text = %q, want guidance to try a different city", result.Text)
	}
	if provider.rateCalls != 0 {
		t.Errorf("rate search ran %d times after failed place resolution", provider.rateCalls)
	}
}

func TestExecuteNoHotels(t *testing.T) {
	provider := &fakeProvider{places: []Place{{PlaceID: "p1", DisplayName: "Paris"}}}
	exec := NewExecutor(provider, "US")

	result, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "Paris"})
	if err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	if len(result.Hotels) != 0 {
		t.Errorf("hotels = %d, want 0", len(result.Hotels))
	}
	if !strings.Contains(result.Text, "different dates") {
		t.Errorf("text = %q, want guidance about dates", result.Text)
	}
}

func TestExecuteDefaultsAndRateParams(t *testing.T) {
	provider := &fakeProvider{places: []Place{{PlaceID: "p1"}}}
	exec := NewExecutor(provider, "US")

	_, err := exec.Execute(context.Background(), hotel.SearchArgs{
		Destination: "Paris",
		CheckIn:     "2025-05-01",
		CheckOut:    "2025-05-03",
		StarRating:  []int{4, 5},
	})
	if err != nil {
		t.Fatalf("Execute err: %v", err)
	}

	p := provider.rateParams
	if p.Adults != 2 || p.Children != 0 {
		t.Errorf("occupancy = %d/%d, want defaults 2/0", p.Adults, p.Children)
	}
	if p.Currency != "USD" {
		t.Errorf("currency = %q, want USD default", p.Currency)
	}
	if p.PlaceID != "p1" {
		t.Errorf("placeId = %q, want first place match", p.PlaceID)
	}
	if p.Limit != 10 || p.Timeout != 8 {
		t.Errorf("limit/timeout = %d/%d, want 10/8", p.Limit, p.Timeout)
	}
	if !p.IncludeHotelData {
		t.Error("includeHotelData should be set")
	}
	if p.GuestNationality != "US" {
		t.Errorf("guestNationality = %q", p.GuestNationality)
	}
	if len(p.Occupancies) != 1 || p.Occupancies[0].Adults != 2 {
		t.Errorf("occupancies = %+v", p.Occupancies)
	}
	if len(p.StarRating) != 2 {
		t.Errorf("starRating = %v, want [4 5]", p.StarRating)
	}
}

func TestExecuteCapsAndPreservesOrder(t *testing.T) {
	provider := &fakeProvider{places: []Place{{PlaceID: "p1"}}}
	for i := 1; i <= 7; i++ {
		id := fmt.Sprintf("h%d", i)
		provider.rates = append(provider.rates, rateHotel(id, "Hotel "+id, float64(100+i)))
	}
	exec := NewExecutor(provider, "US")

	result, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "Paris"})
	if err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	if len(result.Hotels) != 5 {
		t.Fatalf("hotels = %d, want 5", len(result.Hotels))
	}
	for i, s := range result.Hotels {
		want := fmt.Sprintf("h%d", i+1)
		if s.HotelID != want {
			t.Errorf("hotels[%d] = %s, want %s (upstream order)", i, s.HotelID, want)
		}
	}
	if len(provider.detailReqs) != 5 {
		t.Errorf("detail fetches = %d, want 5", len(provider.detailReqs))
	}
}

func TestExecuteEnrichmentFailureKeepsHotel(t *testing.T) {
	provider := &fakeProvider{
		places: []Place{{PlaceID: "p1"}},
		rates: []RateHotel{
			rateHotel("h1", "Inline Grand", 120),
			rateHotel("h2", "Inline Plaza", 90),
		},
		details: map[string]*HotelDetails{
			"h1": {Name: "Fetched Grand", MainPhoto: "photo1", City: "Paris", Country: "FR"},
		},
		detailErrs: map[string]error{"h2": errors.New("detail service down")},
	}
	exec := NewExecutor(provider, "US")

	result, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "Paris"})
	if err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	if len(result.Hotels) != 2 {
		t.Fatalf("hotels = %d, want 2 despite one failed fetch", len(result.Hotels))
	}
	if result.Hotels[0].Name != "Fetched Grand" {
		t.Errorf("hotels[0].Name = %q, want fetched details", result.Hotels[0].Name)
	}
	if result.Hotels[1].Name != "Inline Plaza" {
		t.Errorf("hotels[1].Name = %q, want inline fallback", result.Hotels[1].Name)
	}
	if result.Hotels[1].MainPhoto == "" {
		t.Error("inline thumbnail should survive as the photo fallback")
	}
}

func TestExecuteEveryCurrencyNonEmpty(t *testing.T) {
	noCurrency := RateHotel{HotelID: "h1"}
	noCurrency.Name = "Bare"
	provider := &fakeProvider{
		places: []Place{{PlaceID: "p1"}},
		rates:  []RateHotel{noCurrency},
	}
	exec := NewExecutor(provider, "US")

	result, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "Paris", Currency: "EUR"})
	if err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	for _, s := range result.Hotels {
		if s.Currency == "" {
			t.Errorf("hotel %s has empty currency", s.HotelID)
		}
		if s.Currency != "EUR" {
			t.Errorf("currency = %q, want request fallback EUR", s.Currency)
		}
	}
}

func TestExecuteResultText(t *testing.T) {
	provider := &fakeProvider{
		places: []Place{{PlaceID: "p1"}},
		rates: []RateHotel{
			rateHotel("h1", "Grand", 120),
			rateHotel("h2", "Plaza", 80),
		},
		details: map[string]*HotelDetails{
			"h1": {Name: "Grand", HotelFacilities: []Facility{{Name: "Pool"}, {Name: "WiFi"}}},
			"h2": {Name: "Plaza"},
		},
	}
	exec := NewExecutor(provider, "US")

	result, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "Paris"})
	if err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	for _, want := range []string{
		"Found 2 hotels in Paris",
		"USD 80-120/night",
		"[OPTIONS: Grand | Plaza]",
		"Grand: Pool, WiFi",
	} {
		if !strings.Contains(result.Text, want) {
			t.Errorf("text missing %q:\n%s", want, result.Text)
		}
	}
}

func TestExecutePricePreference(t *testing.T) {
	total := Money{Amount: 70, Currency: "GBP"}

	offerAndRate := RateHotel{HotelID: "h1"}
	offerAndRate.Name = "Offer"
	offerAndRate.RoomTypes = []RoomType{{
		OfferRetailRate: &Money{Amount: 100, Currency: "USD"},
		Rates:           []Rate{{}},
	}}
	offerAndRate.RoomTypes[0].Rates[0].RetailRate.Total = []Money{total}

	suggestedOnly := RateHotel{HotelID: "h2"}
	suggestedOnly.Name = "Suggested"
	suggestedOnly.RoomTypes = []RoomType{{
		SuggestedSellingPrice: &Money{Amount: 85},
	}}

	rateOnly := RateHotel{HotelID: "h3"}
	rateOnly.Name = "RateTotal"
	rateOnly.RoomTypes = []RoomType{{Rates: []Rate{{}}}}
	rateOnly.RoomTypes[0].Rates[0].RetailRate.Total = []Money{total}
	rateOnly.RoomTypes[0].Rates[0].CancellationPolicies.RefundableTag = "RFN"

	unpriced := RateHotel{HotelID: "h4"}
	unpriced.Name = "NoPrice"

	provider := &fakeProvider{
		places: []Place{{PlaceID: "p1"}},
		rates:  []RateHotel{offerAndRate, suggestedOnly, rateOnly, unpriced},
	}
	exec := NewExecutor(provider, "US")

	result, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "London"})
	if err != nil {
		t.Fatalf("Execute err: %v", err)
	}
	hs := result.Hotels
	if len(hs) != 4 {
		t.Fatalf("hotels = %d, want 4", len(hs))
	}

	if hs[0].MinRate == nil || *hs[0].MinRate != 100 {
		t.Errorf("offer-level price should win: %+v", hs[0].MinRate)
	}
	if hs[0].Currency != "USD" {
		t.Errorf("offer currency should win: %q", hs[0].Currency)
	}
	if hs[1].MinRate == nil || *hs[1].MinRate != 85 {
		t.Errorf("suggested selling price fallback: %+v", hs[1].MinRate)
	}
	if hs[2].MinRate == nil || *hs[2].MinRate != 70 {
		t.Errorf("rate total fallback: %+v", hs[2].MinRate)
	}
	if hs[2].Currency != "GBP" {
		t.Errorf("rate total currency fallback: %q", hs[2].Currency)
	}
	if hs[2].CancellationPolicy != "RFN" {
		t.Errorf("cancellation tag = %q, want RFN", hs[2].CancellationPolicy)
	}
	if hs[3].MinRate != nil {
		t.Errorf("unpriced hotel should have nil MinRate, got %v", *hs[3].MinRate)
	}
}

func TestExecuteProviderFailureIsError(t *testing.T) {
	provider := &fakeProvider{placesErr: errors.New("boom")}
	exec := NewExecutor(provider, "US")

	if _, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "Paris"}); err == nil {
		t.Fatal("expected error from place search failure")
	}

	provider = &fakeProvider{places: []Place{{PlaceID: "p1"}}, ratesErr: errors.New("boom")}
	exec = NewExecutor(provider, "US")
	if _, err := exec.Execute(context.Background(), hotel.SearchArgs{Destination: "Paris"}); err == nil {
		t.Fatal("expected error from rate search failure")
	}
}
