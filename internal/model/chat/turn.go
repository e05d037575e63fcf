package chat

import "github.com/sarderiftekhar/zzstay-com/internal/model/hotel"

// TurnResult is what one conversation turn hands back to the client:
// the reply text, hotel cards when a search ran, and optional tappable
// follow-up suggestions. Hotels and Options serialize as null when
// absent so the frontend can branch on them directly.
type TurnResult struct {
	Content string          `json:"content"`
	Hotels  []hotel.Summary `json:"hotels"`
	Options []string        `json:"options"`
}
