package schema

import (
	"encoding/json"
	"fmt"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is a callable function definition derived from a connected app's API
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	App         string             `json:"app,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// ToolFilter selects tools by app name, tag or action name
type ToolFilter struct {
	Apps    []string `json:"apps,omitempty" yaml:"apps,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Actions []string `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// ToolCall represents a tool invocation requested by the model
type ToolCall struct {
	Id    string          `json:"id,omitempty"`    // Provider-assigned call ID
	Name  string          `json:"name"`            // Tool name
	Input json.RawMessage `json:"input,omitempty"` // JSON-encoded arguments
}

// ToolResult represents the result of running a tool
type ToolResult struct {
	Id      string          `json:"id,omitempty"`      // Matches the ToolCall ID
	Name    string          `json:"name,omitempty"`    // Tool name
	Content json.RawMessage `json:"content,omitempty"` // JSON-encoded result
	IsError bool            `json:"isError,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolResult returns a successful result for a call
func NewToolResult(call ToolCall, v any) ToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return NewToolError(call, err)
	}
	return ToolResult{
		Id:      call.Id,
		Name:    call.Name,
		Content: json.RawMessage(data),
	}
}

// NewToolError returns an error result for a call
func NewToolError(call ToolCall, err error) ToolResult {
	data, _ := json.Marshal(err.Error())
	return ToolResult{
		Id:      call.Id,
		Name:    call.Name,
		Content: json.RawMessage(data),
		IsError: true,
	}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Tool) String() string {
	return types.Stringify(t)
}

func (f ToolFilter) String() string {
	return types.Stringify(f)
}

func (c ToolCall) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, string(c.Input))
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsEmpty returns true if the filter selects nothing: tools are chosen
// by app or by action, and tags only narrow an app selection
func (f ToolFilter) IsEmpty() bool {
	return len(f.Apps) == 0 && len(f.Actions) == 0
}
