package toolset

import (
	"context"

	// Packages
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Platform is the interface to a tool-calling platform, which stores
// connections between entities and third-party apps and exposes the app
// APIs as callable tools
type Platform interface {
	// GetConnection returns the active connection between an entity and an app.
	// Returns an error wrapping ErrNoConnectedAccount when there is none.
	GetConnection(ctx context.Context, entity, app string) (*schema.Connection, error)

	// InitiateConnection starts a new connection between an entity and an app.
	// The returned connection carries the redirect URL for user sign-in.
	InitiateConnection(ctx context.Context, entity, app string, opts ...opt.Opt) (*schema.Connection, error)

	// Connection returns a connection by identifier
	Connection(ctx context.Context, id string) (*schema.Connection, error)

	// ListTools returns tool definitions matching the filter
	ListTools(ctx context.Context, filter schema.ToolFilter) ([]schema.Tool, error)

	// ExecuteTool runs a tool call on behalf of an entity
	ExecuteTool(ctx context.Context, entity string, call schema.ToolCall) (*schema.ToolResult, error)
}

// Generator is the interface to a hosted language model which supports
// function calling
type Generator interface {
	// Return the provider name
	Name() string

	// Generate a response for the messages, which may contain tool calls
	Generate(ctx context.Context, model string, messages []schema.Message, tools []schema.Tool, opts ...opt.Opt) (*schema.Message, *schema.Usage, error)
}
