package api

type ChatRequest struct {
	// Required
	Query string

	// Optional params
	ModelName    string
	SystemPrompt string
	Temperature  float32
	History      []*ChatMessage
	Tools        []*ToolDefinition
}

// ToolDefinition describes a function the model may call
// during a chat turn.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *Schema
}

// ToolCall is a single function invocation requested by the model.
// Arguments holds the raw JSON arguments object.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ChatTurn is the result of one non-streaming chat completion.
// A turn carries either final content or one or more tool calls
// the caller must execute before requesting the next turn.
type ChatTurn struct {
	Content   string
	ToolCalls []*ToolCall
}

func (t ChatTurn) HasToolCalls() bool {
	return len(t.ToolCalls) > 0
}
