package chat

import "testing"

func TestDecodeSearchArgsValidJSON(t *testing.T) {
	raw := `{"destination":"Tokyo","checkIn":"2025-06-01","checkOut":"2025-06-05","adults":3,"children":1,"currency":"JPY","starRating":[4,5]}`

	args := decodeSearchArgs(raw)
	if args.Destination != "Tokyo" {
		t.Errorf("destination = %q, want Tokyo", args.Destination)
	}
	if args.Adults != 3 || args.Children != 1 {
		t.Errorf("occupancy = %d/%d, want 3/1", args.Adults, args.Children)
	}
	if args.Currency != "JPY" {
		t.Errorf("currency = %q, want JPY", args.Currency)
	}
	if len(args.StarRating) != 2 {
		t.Errorf("starRating = %v, want [4 5]", args.StarRating)
	}
}

func TestDecodeSearchArgsEmptyPayload(t *testing.T) {
	args := decodeSearchArgs("")
	if args.Destination != "" || args.Adults != 0 {
		t.Fatalf("empty payload should decode to zero args, got %+v", args)
	}
}

func TestDecodeSearchArgsTruncatedJSON(t *testing.T) {
	// Cut off mid-payload: destination and checkIn are recoverable,
	// the rest stays at zero for the executor to default.
	raw := `{"destination": "Paris", "checkIn": "2025-05-01", "checkOut":`

	args := decodeSearchArgs(raw)
	if args.Destination != "Paris" {
		t.Errorf("destination = %q, want Paris", args.Destination)
	}
	if args.CheckIn != "2025-05-01" {
		t.Errorf("checkIn = %q, want 2025-05-01", args.CheckIn)
	}
	if args.CheckOut != "" {
		t.Errorf("checkOut = %q, want empty", args.CheckOut)
	}
	if args.Adults != 0 || args.Children != 0 {
		t.Errorf("occupancy = %d/%d, want 0/0", args.Adults, args.Children)
	}
}

func TestDecodeSearchArgsRecoversNumbers(t *testing.T) {
	raw := `{"destination": "Rome", "adults": 4, "children": 2, "checkIn": "2025-07-0` // truncated

	args := decodeSearchArgs(raw)
	if args.Adults != 4 || args.Children != 2 {
		t.Errorf("occupancy = %d/%d, want 4/2", args.Adults, args.Children)
	}
	if args.Destination != "Rome" {
		t.Errorf("destination = %q, want Rome", args.Destination)
	}
}
