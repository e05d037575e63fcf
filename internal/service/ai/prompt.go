package ai

import (
	"fmt"
	"time"
)

// Tool declares one function-calling capability in the wire shape the
// chat completions API expects.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction is the named schema inside a tool declaration.
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// SearchHotelsTool is the only tool the assistant can call.
const SearchHotelsTool = "search_hotels"

// Tools returns the tool schema sent on the first model call.
func Tools() []Tool {
	return []Tool{
		{
			Type: "function",
			Function: ToolFunction{
				Name:        SearchHotelsTool,
				Description: "Search hotels with live prices for a destination and stay dates. Call this once the user has given a destination; assume sensible dates if they gave a rough timeframe.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"destination": map[string]any{
							"type":        "string",
							"description": "City or area the user wants to stay in, e.g. \"Paris\" or \"Bali\"",
						},
						"checkIn": map[string]any{
							"type":        "string",
							"description": "Check-in date in YYYY-MM-DD format",
						},
						"checkOut": map[string]any{
							"type":        "string",
							"description": "Check-out date in YYYY-MM-DD format",
						},
						"adults": map[string]any{
							"type":        "integer",
							"description": "Number of adult guests, default 2",
						},
						"children": map[string]any{
							"type":        "integer",
							"description": "Number of children, default 0",
						},
						"currency": map[string]any{
							"type":        "string",
							"description": "ISO 4217 currency code for prices, default USD",
						},
						"starRating": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "integer"},
							"description": "Restrict results to these star ratings, e.g. [4, 5]",
						},
					},
					"required": []string{"destination", "checkIn", "checkOut"},
				},
			},
		},
	}
}

// SystemPrompt builds the assistant persona and reply contract. The
// current date is injected so relative phrases like "next weekend"
// resolve to real dates.
func SystemPrompt(now time.Time) string {
	return fmt.Sprintf(`You are the zzstay travel assistant, a friendly hotel-booking helper.

Today is %s.

Rules:
- Reply in short plain text. No markdown, no headings, no asterisks.
- When the user wants hotels and you know the destination, call search_hotels. Pick concrete dates yourself if the user was vague.
- Hotel results render as cards next to your reply, so never list hotels or prices yourself; write one or two enthusiastic sentences instead.
- Answer amenity questions only from the facility data given to you. If you do not have it, say so.
- You may end a reply with a single line of tappable suggestions in the form [OPTIONS: first | second | third]. Keep each option under six words.
- You only help with travel and hotels. Politely decline anything else.`,
		now.Format("Monday, 2 January 2006"))
}
