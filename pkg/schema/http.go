package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// AuthRequest asks for an entity to be connected to an app. When Wait is
// non-zero, the request blocks for up to that many seconds for the
// connection to become active.
type AuthRequest struct {
	Entity string `json:"entityId,omitempty"`
	App    string `json:"app,omitempty"`
	Wait   uint   `json:"wait,omitempty"`
}

// AuthResponse either carries an active connection, or the redirect URL
// the user needs to visit to complete the connection
type AuthResponse struct {
	RedirectURL string      `json:"redirectUrl,omitempty"`
	Message     string      `json:"message,omitempty"`
	Connection  *Connection `json:"connection,omitempty"`
}

// ExecuteRequest asks for a task to be run on behalf of an entity
type ExecuteRequest struct {
	Entity string `json:"entityId,omitempty"`
	Task   string `json:"task,omitempty"`
}

// ExecuteResponse is the outcome of running a task. When the entity has
// not yet connected the app, only RedirectURL and Message are set.
type ExecuteResponse struct {
	Entity      string       `json:"entityId"`
	Task        string       `json:"task"`
	RedirectURL string       `json:"redirectUrl,omitempty"`
	Message     string       `json:"message,omitempty"`
	Response    *Message     `json:"response,omitempty"`
	Result      []ToolResult `json:"result,omitempty"`
	Usage       *Usage       `json:"usage,omitempty"`
}

// ListToolsRequest filters the tools returned
type ListToolsRequest struct {
	ToolFilter
}

// ListToolsResponse is a list of tools
type ListToolsResponse struct {
	Count uint   `json:"count"`
	Body  []Tool `json:"body,omitzero"`
}

// ListTasksResponse is a list of configured tasks
type ListTasksResponse struct {
	Count uint   `json:"count"`
	Body  []Task `json:"body,omitzero"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r AuthRequest) String() string {
	return types.Stringify(r)
}

func (r AuthResponse) String() string {
	return types.Stringify(r)
}

func (r ExecuteRequest) String() string {
	return types.Stringify(r)
}

func (r ExecuteResponse) String() string {
	return types.Stringify(r)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RequiresAuth returns true if the user needs to sign in before the
// task can run
func (r ExecuteResponse) RequiresAuth() bool {
	return r.RedirectURL != ""
}
