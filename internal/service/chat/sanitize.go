package chat

import (
	"regexp"
	"strings"

	"github.com/sarderiftekhar/zzstay-com/internal/model/chat"
)

const (
	maxMessages      = 30
	maxMessageLength = 500
)

// lengthPolicyMessage is the fixed reply for over-long conversations.
// It is a normal outcome, not an error, and skips all external calls.
const lengthPolicyMessage = "Our conversation is getting long! Please start a new chat so I can help you fresh. Just close and reopen the chat widget."

// Injection tokens stripped from user content: model-control delimiters
// and instruction-boundary markers.
var (
	controlTokenPattern = regexp.MustCompile(`<\|[^|]*\|>`)
	instTokenPattern    = regexp.MustCompile(`(?i)\[INST\]|\[/INST\]`)
	sysTokenPattern     = regexp.MustCompile(`(?i)<<SYS>>|<</SYS>>`)
)

func sanitizeContent(text string) string {
	text = controlTokenPattern.ReplaceAllString(text, "")
	text = instTokenPattern.ReplaceAllString(text, "")
	text = sysTokenPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// sanitizeTranscript drops entries with unrecognized roles, truncates
// each content to the per-message cap, and strips injection tokens.
// Unknown roles are dropped silently rather than rejected.
func sanitizeTranscript(messages []chat.Message) []chat.Message {
	sanitized := make([]chat.Message, 0, len(messages))
	for _, m := range messages {
		if m.Role != chat.RoleUser && m.Role != chat.RoleAssistant {
			continue
		}
		content := m.Content
		if runes := []rune(content); len(runes) > maxMessageLength {
			content = string(runes[:maxMessageLength])
		}
		sanitized = append(sanitized, chat.Message{
			Role:    m.Role,
			Content: sanitizeContent(content),
		})
	}
	return sanitized
}
