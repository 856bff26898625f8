package manager

import (
	"cmp"
	"context"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Execute runs a task on behalf of an entity. When the entity has not
// connected the task's app, the response carries the redirect URL and the
// model is not called. Otherwise the model is given the task and the app's
// tools, and any tool calls it makes are run.
func (m *Manager) Execute(ctx context.Context, req schema.ExecuteRequest) (result *schema.ExecuteResponse, err error) {
	req.Entity = cmp.Or(req.Entity, m.entity)
	logger := m.logger.With(
		zap.String("request", uuid.NewString()),
		zap.String("entity", req.Entity),
		zap.String("task", req.Task),
	)

	// Otel span
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Execute",
		attribute.String("request", req.String()),
	)
	defer func() {
		if err != nil {
			logger.Error("execute failed", zap.Error(err))
		}
		endSpan(err)
	}()

	// Get the task and entity
	task, err := m.Task(req.Task)
	if err != nil {
		return nil, err
	}
	entity, err := m.toolkit.Entity(req.Entity)
	if err != nil {
		return nil, err
	}
	response := &schema.ExecuteResponse{
		Entity: req.Entity,
		Task:   task.Name,
	}

	// Make sure the app is connected
	conn, err := entity.EnsureConnection(ctx, task.App)
	if err != nil {
		return nil, err
	} else if !conn.IsActive() {
		logger.Info("log in required", zap.String("app", task.App), zap.String("redirect", conn.RedirectURL))
		response.RedirectURL = conn.RedirectURL
		response.Message = AuthMessage
		return response, nil
	}

	// A model is needed from here on
	if m.generator == nil {
		return nil, toolset.ErrNotImplemented.With("no model is configured")
	}

	// Get the tools
	tools, err := m.toolkit.Tools(ctx, task.Tools)
	if err != nil {
		return nil, err
	}

	// Ask the model
	model := cmp.Or(task.Model, m.model)
	message, usage, err := m.generate(ctx, model, task, tools)
	if err != nil {
		return nil, err
	}
	logger.Debug("model response",
		zap.String("model", model),
		zap.Int("tool_calls", len(message.ToolCalls)),
		zap.String("reason", message.Reason),
	)

	// Run the tool calls
	results, err := entity.HandleToolCalls(ctx, message, tools)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.IsError {
			logger.Warn("tool call failed", zap.String("tool", r.Name), zap.ByteString("content", r.Content))
		}
	}

	// Return success
	response.Message = task.Message
	response.Response = message
	response.Result = results
	response.Usage = usage
	logger.Info("task executed", zap.Int("results", len(results)))
	return response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (m *Manager) generate(ctx context.Context, model string, task *schema.Task, tools []schema.Tool) (message *schema.Message, usage *schema.Usage, err error) {
	// Otel span
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Generate",
		attribute.String("provider", m.generator.Name()),
		attribute.String("model", model),
		attribute.Int("tools", len(tools)),
	)
	defer func() { endSpan(err) }()

	// System prompt and instruction
	messages := make([]schema.Message, 0, 2)
	if task.System != "" {
		messages = append(messages, schema.NewMessage(schema.RoleSystem, task.System))
	}
	messages = append(messages, schema.NewMessage(schema.RoleUser, task.Instruction))

	// Call the model
	start := time.Now()
	message, usage, err = m.generator.Generate(ctx, model, messages, tools)
	m.metrics.RecordGenerate(m.generator.Name(), model, time.Since(start), usage, err)
	if err != nil {
		return nil, nil, err
	}
	return message, usage, nil
}
