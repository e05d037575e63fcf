package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/sarderiftekhar/zzstay-com/internal/config"
	"github.com/sarderiftekhar/zzstay-com/internal/model/chat"
)

var (
	// ErrUnavailable reports a transport-level failure: the endpoint
	// never produced a response.
	ErrUnavailable = errors.New("chat model unavailable")

	// ErrMalformedResponse reports a response body that stayed
	// undecodable even after the escape repair pass.
	ErrMalformedResponse = errors.New("chat model returned malformed JSON")

	// ErrEmptyResponse reports a well-formed body with no choices.
	ErrEmptyResponse = errors.New("chat model returned no choices")
)

// ModelError reports a non-success HTTP status from the endpoint.
type ModelError struct {
	Status int
	Body   string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("chat model API error: %d", e.Status)
}

// Client talks to an OpenAI-compatible chat completions endpoint over
// raw HTTP. Each call is a single attempt: no retry, no backoff.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// NewClient builds a model client from configuration.
func NewClient(cfg config.AIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60
	}
	return &Client{
		httpClient:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

type chatRequest struct {
	Model       string         `json:"model"`
	Messages    []chat.Message `json:"messages"`
	Stream      bool           `json:"stream"`
	Temperature float64        `json:"temperature"`
	MaxTokens   int            `json:"max_tokens"`
	Tools       []Tool         `json:"tools,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chat.Message `json:"message"`
	} `json:"choices"`
}

// Chat sends one completion request and returns the assistant message.
// The tool schema is attached only when withTools is set, so the model
// cannot call tools on the follow-up turn that phrases tool results.
func (c *Client) Chat(ctx context.Context, messages []chat.Message, withTools bool) (*chat.Message, error) {
	body := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Stream:      false,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if withTools {
		body.Tools = Tools()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[ai] model error: %d %s", resp.StatusCode, truncate(string(text), 500))
		return nil, &ModelError{Status: resp.StatusCode, Body: truncate(string(text), 500)}
	}

	parsed, err := decodeResponse(text)
	if err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	msg := parsed.Choices[0].Message
	return &msg, nil
}

// invalidEscape matches a backslash that does not start a recognized
// JSON escape sequence.
var invalidEscape = regexp.MustCompile(`\\([^"\\/bfnrtu])`)

func decodeResponse(text []byte) (*chatResponse, error) {
	var parsed chatResponse
	if err := json.Unmarshal(text, &parsed); err == nil {
		return &parsed, nil
	}

	// The upstream model sometimes emits invalid escape sequences
	// (e.g. \x) inside reasoning or tool-call arguments. Escape every
	// stray backslash once and retry.
	log.Printf("[ai] response JSON parse failed, attempting escape repair")
	fixed := invalidEscape.ReplaceAll(text, []byte(`\\$1`))
	if err := json.Unmarshal(fixed, &parsed); err != nil {
		log.Printf("[ai] unfixable response body: %s", truncate(string(text), 500))
		return nil, ErrMalformedResponse
	}
	return &parsed, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
