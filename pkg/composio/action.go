package composio

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns the actions matching the filter as tool definitions
func (c *Client) ListTools(ctx context.Context, filter schema.ToolFilter) ([]schema.Tool, error) {
	if filter.IsEmpty() {
		return nil, toolset.ErrBadParameter.With("filter requires apps or actions")
	}

	// Build the query
	query := url.Values{}
	if len(filter.Apps) > 0 {
		query.Set("apps", strings.Join(filter.Apps, ","))
	}
	if len(filter.Tags) > 0 {
		query.Set("tags", strings.Join(filter.Tags, ","))
	}
	if len(filter.Actions) > 0 {
		query.Set("actions", strings.Join(filter.Actions, ","))
	}

	// Perform the request
	var response actionList
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v2", "actions"), client.OptQuery(query)); err != nil {
		return nil, platformErr(err)
	}

	// Convert to tools
	result := make([]schema.Tool, 0, len(response.Items))
	for _, action := range response.Items {
		result = append(result, toolFromAction(action))
	}
	return result, nil
}

// ExecuteTool runs an action on behalf of an entity. An action which the
// platform reports as unsuccessful returns a result with IsError set.
func (c *Client) ExecuteTool(ctx context.Context, entity string, call schema.ToolCall) (*schema.ToolResult, error) {
	if entity == "" {
		return nil, toolset.ErrBadParameter.With("entity is required")
	} else if call.Name == "" {
		return nil, toolset.ErrBadParameter.With("tool name is required")
	}

	// Empty input is an empty object
	input := call.Input
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}

	// Perform the request
	payload, err := client.NewJSONRequest(executeRequest{
		EntityId: entity,
		Input:    input,
	})
	if err != nil {
		return nil, err
	}
	var response executeResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("v2", "actions", call.Name, "execute")); err != nil {
		return nil, platformErr(err)
	}

	// Return the result
	if !response.ok() {
		message := "action failed"
		if response.Error != nil && *response.Error != "" {
			message = *response.Error
		}
		result := schema.NewToolError(call, toolset.ErrInternalServerError.With(message))
		return &result, nil
	}
	return &schema.ToolResult{
		Id:      call.Id,
		Name:    call.Name,
		Content: response.Data,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r executeResponse) ok() bool {
	switch {
	case r.Successful != nil:
		return *r.Successful
	case r.Successfull != nil:
		return *r.Successfull
	default:
		return r.Error == nil || *r.Error == ""
	}
}

// toolFromAction converts an action to a tool. Parameters which do not
// decode as a JSON schema are dropped.
func toolFromAction(a action) schema.Tool {
	tool := schema.Tool{
		Name:        a.Name,
		Description: a.Description,
		App:         strings.ToLower(a.AppName),
		Tags:        a.Tags,
	}
	if len(a.Parameters) > 0 {
		var s jsonschema.Schema
		if err := json.Unmarshal(a.Parameters, &s); err == nil {
			tool.Parameters = &s
		}
	}
	return tool
}
