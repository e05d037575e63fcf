package chat

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sarderiftekhar/zzstay-com/internal/model/chat"
	"github.com/sarderiftekhar/zzstay-com/internal/model/hotel"
	"github.com/sarderiftekhar/zzstay-com/internal/service/ai"
	"github.com/sarderiftekhar/zzstay-com/internal/service/hotels"
)

// fallbackAcknowledgement replaces the model's closing sentence when
// the second call fails after a successful search. Hotels already in
// hand are kept; only the phrasing degrades.
const fallbackAcknowledgement = "Here are the hotels I found!"

// ModelClient is the chat completions collaborator.
type ModelClient interface {
	Chat(ctx context.Context, messages []chat.Message, withTools bool) (*chat.Message, error)
}

// ToolExecutor runs one tool call's search pipeline.
type ToolExecutor interface {
	Execute(ctx context.Context, args hotel.SearchArgs) (hotels.Result, error)
}

// StageError labels a turn failure with the pipeline stage that
// produced it, so operators can tell a model outage from a hotel API
// outage from garbage model output.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + " failed: " + e.Err.Error() }
func (e *StageError) Unwrap() error { return e.Err }

// Service runs one stateless conversation turn end to end: sanitize,
// first model call, optional tool execution, second model call,
// formatting. Each request carries its full transcript; nothing is
// kept between turns.
type Service struct {
	model ModelClient
	tools map[string]ToolExecutor
}

// NewService wires the controller. The tool table is keyed by tool
// name and invoked at most once per turn; additional tools slot in
// here without touching the turn logic.
func NewService(model ModelClient, search ToolExecutor) *Service {
	return &Service{
		model: model,
		tools: map[string]ToolExecutor{ai.SearchHotelsTool: search},
	}
}

// Run executes one conversation turn over the client's transcript.
func (s *Service) Run(ctx context.Context, transcript []chat.Message) (chat.TurnResult, error) {
	if len(transcript) > maxMessages {
		return chat.TurnResult{Content: lengthPolicyMessage}, nil
	}

	turnID := uuid.NewString()
	messages := make([]chat.Message, 0, len(transcript)+3)
	messages = append(messages, chat.Message{Role: chat.RoleSystem, Content: ai.SystemPrompt(time.Now())})
	messages = append(messages, sanitizeTranscript(transcript)...)

	first, err := s.model.Chat(ctx, messages, true)
	if err != nil {
		return chat.TurnResult{}, &StageError{Stage: "call1", Err: err}
	}

	if len(first.ToolCalls) == 0 {
		content, options := parseOptions(first.Content)
		return chat.TurnResult{Content: content, Options: options}, nil
	}

	// Single-tool turns: only the first call is dispatched, the rest
	// are ignored.
	tc := first.ToolCalls[0]
	args := decodeSearchArgs(tc.Function.Arguments)

	result := hotels.Result{Text: "Unknown tool"}
	if exec, ok := s.tools[tc.Function.Name]; ok {
		result, err = exec.Execute(ctx, args)
		if err != nil {
			return chat.TurnResult{}, &StageError{Stage: "tool-exec", Err: err}
		}
	}
	log.Printf("[chat] turn=%s tool=%s destination=%q hotels=%d", turnID, tc.Function.Name, args.Destination, len(result.Hotels))

	followUp := append(messages,
		chat.Message{Role: chat.RoleAssistant, Content: first.Content, ToolCalls: first.ToolCalls},
		chat.Message{Role: chat.RoleTool, Content: result.Text, ToolCallID: tc.ID},
	)

	second, err := s.model.Chat(ctx, followUp, false)
	if err != nil {
		// Degrade instead of failing: fetched hotels are never lost
		// to a second-call error.
		log.Printf("[chat] turn=%s second model call failed: %v", turnID, err)
		return chat.TurnResult{Content: fallbackAcknowledgement, Hotels: presentHotels(result)}, nil
	}

	reply := second.Content
	if reply == "" {
		reply = fallbackAcknowledgement
	}
	content, options := parseOptions(reply)
	return chat.TurnResult{Content: content, Hotels: presentHotels(result), Options: options}, nil
}

// presentHotels maps an empty result set to nil so the response field
// serializes as null.
func presentHotels(result hotels.Result) []hotel.Summary {
	if len(result.Hotels) == 0 {
		return nil
	}
	return result.Hotels
}
