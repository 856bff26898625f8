package httphandler_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	// Packages
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	toolset "github.com/mutablelogic/go-toolset"
	httphandler "github.com/mutablelogic/go-toolset/pkg/httphandler"
	manager "github.com/mutablelogic/go-toolset/pkg/manager"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	toolkit "github.com/mutablelogic/go-toolset/pkg/toolkit"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK PLATFORM

// mockPlatform has an active connection for the entities in connected
type mockPlatform struct {
	sync.Mutex
	connected map[string]bool
	status    schema.ConnectionStatus
	tools     []schema.Tool
	filter    schema.ToolFilter
	err       error
}

var _ toolset.Platform = (*mockPlatform)(nil)

func (p *mockPlatform) GetConnection(_ context.Context, entity, app string) (*schema.Connection, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.connected[entity] {
		return &schema.Connection{Id: "ca_" + entity, Entity: entity, App: app, Status: schema.StatusActive}, nil
	}
	return nil, toolset.ErrNoConnectedAccount.Withf("entity %q app %q", entity, app)
}

func (p *mockPlatform) InitiateConnection(_ context.Context, entity, app string, _ ...opt.Opt) (*schema.Connection, error) {
	return &schema.Connection{Id: "ca_new", Entity: entity, App: app, Status: schema.StatusInitiated, RedirectURL: "https://auth.example.com/" + app}, nil
}

func (p *mockPlatform) Connection(_ context.Context, id string) (*schema.Connection, error) {
	status := p.status
	if status == "" {
		status = schema.StatusInitiated
	}
	return &schema.Connection{Id: id, App: "github", Status: status}, nil
}

func (p *mockPlatform) ListTools(_ context.Context, filter schema.ToolFilter) ([]schema.Tool, error) {
	p.Lock()
	defer p.Unlock()
	p.filter = filter
	return p.tools, nil
}

func (p *mockPlatform) ExecuteTool(_ context.Context, entity string, call schema.ToolCall) (*schema.ToolResult, error) {
	result := schema.NewToolResult(call, map[string]bool{"ok": true})
	return &result, nil
}

///////////////////////////////////////////////////////////////////////////////
// MOCK GENERATOR

// mockGenerator asks for every tool to be called once
type mockGenerator struct{}

var _ toolset.Generator = (*mockGenerator)(nil)

func (mockGenerator) Name() string { return "mock" }

func (mockGenerator) Generate(_ context.Context, _ string, _ []schema.Message, tools []schema.Tool, _ ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	message := &schema.Message{Role: schema.RoleAssistant, Reason: "tool_calls"}
	for _, tool := range tools {
		message.ToolCalls = append(message.ToolCalls, schema.ToolCall{Id: "call_" + tool.Name, Name: tool.Name})
	}
	return message, &schema.Usage{InputTokens: 10, OutputTokens: 5}, nil
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func newTestManager(t *testing.T, platform *mockPlatform) *manager.Manager {
	t.Helper()
	tk, err := toolkit.New(platform, toolkit.WithPollInterval(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	m, err := manager.NewManager(
		manager.WithToolkit(tk),
		manager.WithGenerator(mockGenerator{}),
		manager.WithLogger(zap.NewNop()),
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// newRouter registers the handlers under the /api prefix
func newRouter(t *testing.T, manager *manager.Manager, collector *metrics.Collector) *httprouter.Router {
	t.Helper()
	router, err := httprouter.NewRouter(context.Background(), http.NewServeMux(), "/api", "", "Test API", "1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if err := httphandler.RegisterHandlers(manager, collector, router); err != nil {
		t.Fatal(err)
	}
	return router
}
