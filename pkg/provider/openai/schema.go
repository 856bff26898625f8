package openai

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - OpenAI REST API wire format
//
// Reference: https://platform.openai.com/docs/api-reference/chat/create

///////////////////////////////////////////////////////////////////////////////
// CHAT COMPLETIONS - REQUEST

// chatCompletionRequest is the request body for POST /v1/chat/completions
type chatCompletionRequest struct {
	Model               string           `json:"model"`
	Messages            []openaiMessage  `json:"messages"`
	Tools               []toolDefinition `json:"tools,omitempty"`
	ToolChoice          string           `json:"tool_choice,omitempty"`
	Temperature         *float64         `json:"temperature,omitempty"`
	MaxCompletionTokens *uint            `json:"max_completion_tokens,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// CHAT COMPLETIONS - RESPONSE

// chatCompletionResponse is the response body from POST /v1/chat/completions
type chatCompletionResponse struct {
	Id      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

// chatChoice is one element of the choices array
type chatChoice struct {
	Index        int           `json:"index"`
	Message      openaiMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// chatUsage reports token counts for a chat completion request
type chatUsage struct {
	PromptTokens     uint `json:"prompt_tokens"`
	CompletionTokens uint `json:"completion_tokens"`
	TotalTokens      uint `json:"total_tokens"`
}

///////////////////////////////////////////////////////////////////////////////
// MESSAGES

// openaiMessage is a single turn in a conversation. Content is nil for
// assistant messages which only carry tool calls.
type openaiMessage struct {
	Role      string           `json:"role"`
	Content   *string          `json:"content"`
	ToolCalls []openaiToolCall `json:"tool_calls,omitempty"`
	Refusal   *string          `json:"refusal,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CALLS

// openaiToolCall is a tool invocation in an assistant message
type openaiToolCall struct {
	Id       string         `json:"id"`
	Type     string         `json:"type"` // always "function"
	Function openaiFunction `json:"function"`
}

// openaiFunction carries the function name and JSON-encoded arguments
type openaiFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

///////////////////////////////////////////////////////////////////////////////
// TOOL DEFINITIONS

// toolDefinition describes a tool the model may call
type toolDefinition struct {
	Type     string          `json:"type"` // always "function"
	Function toolFunctionDef `json:"function"`
}

type toolFunctionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}

///////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	toolTypeFunction = "function"
)

const (
	toolChoiceAuto     = "auto"
	toolChoiceNone     = "none"
	toolChoiceRequired = "required"
)

const (
	roleAssistant = "assistant"
)

var emptyParameters = json.RawMessage(`{"type":"object","properties":{}}`)
