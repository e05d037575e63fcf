package hotels

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/sarderiftekhar/zzstay-com/internal/model/hotel"
)

const (
	// rateLimit caps how many rate results are requested upstream.
	rateLimit = 10
	// cardLimit caps how many hotels are enriched and returned.
	cardLimit = 5
	// rateTimeoutSeconds bounds how long upstream may spend on the rate search.
	rateTimeoutSeconds = 8

	defaultAdults   = 2
	defaultCurrency = "USD"
)

// Result is what a tool execution hands back: text for the model to
// phrase a reply from, and structured cards for the frontend. Soft
// failures (no destination, no availability) are normal Results.
type Result struct {
	Text   string
	Hotels []hotel.Summary
}

// Executor runs the multi-stage hotel search behind the search_hotels
// tool: place resolution, rate search, concurrent detail enrichment
// and summary construction.
type Executor struct {
	api         Provider
	nationality string
}

// NewExecutor builds a search executor on top of a provider.
func NewExecutor(api Provider, guestNationality string) *Executor {
	if guestNationality == "" {
		guestNationality = "US"
	}
	return &Executor{api: api, nationality: guestNationality}
}

// Execute runs the search pipeline for one tool call. Only provider
// failures return an error; empty outcomes come back as Results so the
// model can phrase a helpful reply.
func (e *Executor) Execute(ctx context.Context, args hotel.SearchArgs) (Result, error) {
	if args.Adults <= 0 {
		args.Adults = defaultAdults
	}
	if args.Children < 0 {
		args.Children = 0
	}
	if args.Currency == "" {
		args.Currency = defaultCurrency
	}

	places, err := e.api.SearchPlaces(ctx, args.Destination)
	if err != nil {
		return Result{}, fmt.Errorf("place search: %w", err)
	}
	if len(places) == 0 {
		return Result{
			Text:   fmt.Sprintf("No destination found for %q. Ask the user to try a different city name.", args.Destination),
			Hotels: []hotel.Summary{},
		}, nil
	}

	rates, err := e.api.SearchRates(ctx, RateSearchParams{
		CheckIn:          args.CheckIn,
		CheckOut:         args.CheckOut,
		Adults:           args.Adults,
		Children:         args.Children,
		Currency:         args.Currency,
		GuestNationality: e.nationality,
		PlaceID:          places[0].PlaceID,
		Occupancies:      []Occupancy{{Adults: args.Adults}},
		IncludeHotelData: true,
		Timeout:          rateTimeoutSeconds,
		Limit:            rateLimit,
		StarRating:       args.StarRating,
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate search: %w", err)
	}
	if len(rates) == 0 {
		return Result{
			Text:   "No hotels found for these dates and criteria. Suggest the user try different dates or a nearby destination.",
			Hotels: []hotel.Summary{},
		}, nil
	}

	if len(rates) > cardLimit {
		rates = rates[:cardLimit]
	}
	details := e.fetchDetails(ctx, rates)

	// Inline hotel data from the rate search is the fallback for
	// hotels whose detail fetch failed; a failed fetch never drops a
	// hotel from the results.
	hasInline := rates[0].DisplayName() != ""

	summaries := make([]hotel.Summary, 0, len(rates))
	facilityLines := make([]string, 0, len(rates))
	for i, rh := range rates {
		det := details[i]
		if det == nil {
			if hasInline {
				det = &rh.HotelDetails
			} else {
				det = &HotelDetails{}
			}
		}
		s := buildSummary(rh, det, args.Currency)
		summaries = append(summaries, s)

		if fetched := details[i]; fetched != nil {
			if names := fetched.FacilityNames(); len(names) > 0 {
				facilityLines = append(facilityLines, s.Name+": "+strings.Join(names, ", "))
			}
		}
	}

	return Result{
		Text:   buildResultText(args.Destination, summaries, facilityLines),
		Hotels: summaries,
	}, nil
}

// fetchDetails enriches up to cardLimit hotels concurrently. Every
// fetch is allowed to finish; a failed slot stays nil.
func (e *Executor) fetchDetails(ctx context.Context, rates []RateHotel) []*HotelDetails {
	details := make([]*HotelDetails, len(rates))
	var wg sync.WaitGroup
	for i, rh := range rates {
		wg.Add(1)
		go func(i int, hotelID string) {
			defer wg.Done()
			det, err := e.api.GetHotelDetails(ctx, hotelID)
			if err != nil {
				log.Printf("[hotels] detail fetch failed for %s: %v", hotelID, err)
				return
			}
			details[i] = det
		}(i, rh.HotelID)
	}
	wg.Wait()
	return details
}

func buildSummary(rh RateHotel, det *HotelDetails, requestCurrency string) hotel.Summary {
	var room *RoomType
	if len(rh.RoomTypes) > 0 {
		room = &rh.RoomTypes[0]
	}
	var rate *Rate
	if room != nil && len(room.Rates) > 0 {
		rate = &room.Rates[0]
	}

	var price *float64
	currency := ""
	if room != nil {
		switch {
		case room.OfferRetailRate != nil:
			price = &room.OfferRetailRate.Amount
			currency = room.OfferRetailRate.Currency
		case room.SuggestedSellingPrice != nil:
			price = &room.SuggestedSellingPrice.Amount
		}
	}
	if rate != nil && len(rate.RetailRate.Total) > 0 {
		if price == nil {
			price = &rate.RetailRate.Total[0].Amount
		}
		if currency == "" {
			currency = rate.RetailRate.Total[0].Currency
		}
	}
	if currency == "" {
		currency = requestCurrency
	}

	name := det.DisplayName()
	if name == "" {
		name = "Hotel"
	}

	var minRate *float64
	if price != nil && *price > 0 {
		v := *price
		minRate = &v
	}

	s := hotel.Summary{
		HotelID:     rh.HotelID,
		Name:        name,
		StarRating:  det.StarRating,
		MainPhoto:   det.Photo(),
		MinRate:     minRate,
		Currency:    currency,
		ReviewScore: det.Score(),
		City:        det.City,
		Country:     det.Country,
	}
	if rate != nil {
		s.CancellationPolicy = rate.CancellationPolicies.RefundableTag
	}
	return s
}

// buildResultText shapes the tool result so the model keeps its own
// reply short, offers the hotel names as tappable follow-ups, and can
// answer amenity questions from real facility data.
func buildResultText(destination string, summaries []hotel.Summary, facilityLines []string) string {
	priceRange := "varies"
	var minPrice, maxPrice float64
	priced := false
	for _, s := range summaries {
		if s.MinRate == nil {
			continue
		}
		if !priced || *s.MinRate < minPrice {
			minPrice = *s.MinRate
		}
		if !priced || *s.MinRate > maxPrice {
			maxPrice = *s.MinRate
		}
		priced = true
	}
	currency := defaultCurrency
	if len(summaries) > 0 && summaries[0].Currency != "" {
		currency = summaries[0].Currency
	}
	if priced {
		priceRange = fmt.Sprintf("%s %.0f-%.0f/night", currency, minPrice, maxPrice)
	}

	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s.Name != "Hotel" {
			names = append(names, s.Name)
		}
	}

	facilityBlock := "Facility details not available for these hotels."
	if len(facilityLines) > 0 {
		facilityBlock = strings.Join(facilityLines, "\n")
	}

	return fmt.Sprintf(
		"Found %d hotels in %s. Price range: %s. Hotel cards are shown automatically, so just write a short enthusiastic intro. Then on the LAST line, add [OPTIONS: %s] so the user can tap to ask about a specific hotel.\n\nHOTEL FACILITIES (use this to answer questions about amenities, parking, breakfast, pools, pets, WiFi, etc.):\n%s",
		len(summaries), destination, priceRange, strings.Join(names, " | "), facilityBlock)
}
