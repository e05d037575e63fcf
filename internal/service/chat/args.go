package chat

import (
	"encoding/json"
	"log"
	"regexp"
	"strconv"

	"github.com/sarderiftekhar/zzstay-com/internal/model/hotel"
)

// Fallback extractors for malformed tool-call payloads. Each field is
// recovered independently so a truncated payload still yields whatever
// it carried intact.
var (
	destinationPattern = regexp.MustCompile(`"destination"\s*:\s*"([^"]+)"`)
	checkInPattern     = regexp.MustCompile(`"checkIn"\s*:\s*"([^"]+)"`)
	checkOutPattern    = regexp.MustCompile(`"checkOut"\s*:\s*"([^"]+)"`)
	adultsPattern      = regexp.MustCompile(`"adults"\s*:\s*(\d+)`)
	childrenPattern    = regexp.MustCompile(`"children"\s*:\s*(\d+)`)
)

// decodeSearchArgs parses a tool call's raw arguments. The primary
// path is a straight JSON decode; on failure it falls back to per-field
// pattern extraction. Best effort: unrecovered fields stay zero and
// pick up executor defaults.
func decodeSearchArgs(raw string) hotel.SearchArgs {
	if raw == "" {
		raw = "{}"
	}

	var args hotel.SearchArgs
	if err := json.Unmarshal([]byte(raw), &args); err == nil {
		return args
	}

	args = hotel.SearchArgs{}
	if m := destinationPattern.FindStringSubmatch(raw); m != nil {
		args.Destination = m[1]
	}
	if m := checkInPattern.FindStringSubmatch(raw); m != nil {
		args.CheckIn = m[1]
	}
	if m := checkOutPattern.FindStringSubmatch(raw); m != nil {
		args.CheckOut = m[1]
	}
	if m := adultsPattern.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			args.Adults = n
		}
	}
	if m := childrenPattern.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			args.Children = n
		}
	}
	log.Printf("[chat] recovered tool arguments via fallback: %+v", args)
	return args
}
