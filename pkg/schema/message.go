package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is a single turn in a conversation with a model. Assistant
// messages may carry tool calls instead of, or as well as, text.
type Message struct {
	Role      string     `json:"role"`
	Text      string     `json:"text,omitempty"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	Reason    string     `json:"reason,omitempty"` // Why the model stopped generating
}

// Usage reports token counts for a model call
type Usage struct {
	InputTokens  uint `json:"inputTokens,omitempty"`
	OutputTokens uint `json:"outputTokens,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMessage returns a text message with the given role
func NewMessage(role, text string) Message {
	return Message{Role: role, Text: text}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return types.Stringify(m)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// HasToolCalls returns true if the model asked for tools to be run
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}
