package toolkit

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// HandleToolCalls runs the tool calls in an assistant message in parallel,
// and returns the results in the same order as the calls. A call to a tool
// which is not in tools, or with input which does not match the tool
// parameters, returns an error result without reaching the platform.
// An error is returned if the platform cannot be reached.
func (e *Entity) HandleToolCalls(ctx context.Context, message *schema.Message, tools []schema.Tool) (result []schema.ToolResult, err error) {
	if message == nil || !message.HasToolCalls() {
		return []schema.ToolResult{}, nil
	}

	// Otel span
	ctx, endSpan := otel.StartSpan(e.tracer, ctx, "HandleToolCalls",
		attribute.String("entity", e.id),
		attribute.Int("calls", len(message.ToolCalls)),
	)
	defer func() { endSpan(err) }()

	// Index tools by name
	byName := make(map[string]*schema.Tool, len(tools))
	for i := range tools {
		byName[tools[i].Name] = &tools[i]
	}

	// Run calls in parallel, each writing to its own slot
	results := make([]schema.ToolResult, len(message.ToolCalls))
	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(e.concurrency)
	for i, call := range message.ToolCalls {
		wg.Go(func() error {
			result, err := e.call(ctx, byName[call.Name], call)
			if err != nil {
				return err
			}
			results[i] = *result
			e.metrics.RecordToolCall(*result)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	// Return success
	return results, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (e *Entity) call(ctx context.Context, tool *schema.Tool, call schema.ToolCall) (result *schema.ToolResult, err error) {
	if tool == nil {
		return toolError(call, toolset.ErrNotFound.Withf("unknown tool %q", call.Name)), nil
	}
	if err := validateInput(tool.Parameters, call.Input); err != nil {
		return toolError(call, err), nil
	}

	// Otel span
	ctx, endSpan := otel.StartSpan(e.tracer, ctx, "ExecuteTool",
		attribute.String("call", call.String()),
	)
	defer func() { endSpan(err) }()

	// Execute the tool
	return e.platform.ExecuteTool(ctx, e.id, call)
}

func toolError(call schema.ToolCall, err error) *schema.ToolResult {
	result := schema.NewToolError(call, err)
	return &result
}

// validateInput checks the input is a JSON object which matches the tool
// parameters. Parameters which cannot be resolved are not checked.
func validateInput(parameters *jsonschema.Schema, input json.RawMessage) error {
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}

	// Unmarshal into a map for validation
	var mapInput map[string]any
	if err := json.Unmarshal(input, &mapInput); err != nil {
		return toolset.ErrBadParameter.Withf("input is not a JSON object: %v", err)
	} else if mapInput == nil {
		return toolset.ErrBadParameter.With("input is not a JSON object")
	}
	if parameters == nil {
		return nil
	}

	// Validate against schema
	resolved, err := parameters.Resolve(nil)
	if err != nil {
		return nil
	}
	if err := resolved.Validate(mapInput); err != nil {
		return toolset.ErrBadParameter.Withf("input validation failed: %v", err)
	}
	return nil
}
