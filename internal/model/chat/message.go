package chat

// Roles that appear in a transcript. Only user and assistant survive
// client-side sanitization; system and tool are added internally.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Message is a single transcript entry in the wire format the chat
// completions API expects. Tool fields stay empty for plain turns.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its raw argument payload.
// Arguments stays text because the model occasionally emits malformed
// JSON that needs best-effort recovery downstream.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}
