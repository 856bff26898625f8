package toolkit_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	cache "github.com/mutablelogic/go-toolset/pkg/cache"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	toolkit "github.com/mutablelogic/go-toolset/pkg/toolkit"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK TYPES

type mockPlatform struct {
	sync.Mutex
	getFn      func(ctx context.Context, entity, app string) (*schema.Connection, error)
	initiateFn func(ctx context.Context, entity, app string) (*schema.Connection, error)
	statusFn   func(n int) (*schema.Connection, error)
	executeFn  func(ctx context.Context, entity string, call schema.ToolCall) (*schema.ToolResult, error)
	tools      []schema.Tool

	gets, initiates, polls int
	executed              []string
	filter                schema.ToolFilter
}

var _ toolset.Platform = (*mockPlatform)(nil)

func (p *mockPlatform) GetConnection(ctx context.Context, entity, app string) (*schema.Connection, error) {
	p.Lock()
	p.gets++
	p.Unlock()
	if p.getFn != nil {
		return p.getFn(ctx, entity, app)
	}
	return nil, toolset.ErrNoConnectedAccount.Withf("entity %q app %q", entity, app)
}

func (p *mockPlatform) InitiateConnection(ctx context.Context, entity, app string, opts ...opt.Opt) (*schema.Connection, error) {
	p.Lock()
	p.initiates++
	p.Unlock()
	if p.initiateFn != nil {
		return p.initiateFn(ctx, entity, app)
	}
	return &schema.Connection{Id: "ca_new", Entity: entity, App: app, Status: schema.StatusInitiated, RedirectURL: "https://auth.example.com/" + app}, nil
}

func (p *mockPlatform) Connection(ctx context.Context, id string) (*schema.Connection, error) {
	p.Lock()
	p.polls++
	n := p.polls
	p.Unlock()
	return p.statusFn(n)
}

func (p *mockPlatform) ListTools(ctx context.Context, filter schema.ToolFilter) ([]schema.Tool, error) {
	p.filter = filter
	return p.tools, nil
}

func (p *mockPlatform) ExecuteTool(ctx context.Context, entity string, call schema.ToolCall) (*schema.ToolResult, error) {
	p.Lock()
	p.executed = append(p.executed, call.Name)
	p.Unlock()
	if p.executeFn != nil {
		return p.executeFn(ctx, entity, call)
	}
	result := schema.NewToolResult(call, map[string]string{"tool": call.Name})
	return &result, nil
}

func activeConnection(entity, app string) *schema.Connection {
	return &schema.Connection{Id: "ca_1", Entity: entity, App: app, Status: schema.StatusActive}
}

func newEntity(t *testing.T, platform toolset.Platform, opts ...toolkit.Opt) *toolkit.Entity {
	t.Helper()
	tk, err := toolkit.New(platform, opts...)
	require.NoError(t, err)
	entity, err := tk.Entity("default")
	require.NoError(t, err)
	return entity
}

///////////////////////////////////////////////////////////////////////////////
// TESTS - LIFECYCLE

func Test_toolkit_001(t *testing.T) {
	assert := assert.New(t)
	_, err := toolkit.New(nil)
	assert.ErrorIs(err, toolset.ErrBadParameter)
	_, err = toolkit.New(new(mockPlatform), toolkit.WithConcurrency(0))
	assert.ErrorIs(err, toolset.ErrBadParameter)
	_, err = toolkit.New(new(mockPlatform), toolkit.WithPollInterval(0))
	assert.ErrorIs(err, toolset.ErrBadParameter)
	_, err = toolkit.New(new(mockPlatform), toolkit.WithCache(nil))
	assert.ErrorIs(err, toolset.ErrBadParameter)
}

func Test_toolkit_002(t *testing.T) {
	// Entity identifiers
	assert := assert.New(t)
	tk, err := toolkit.New(new(mockPlatform))
	require.NoError(t, err)

	for _, id := range []string{"default", "user-123", "a.b@example.com", strings.Repeat("x", 128)} {
		entity, err := tk.Entity(id)
		assert.NoError(err, id)
		if entity != nil {
			assert.Equal(id, entity.Id())
		}
	}
	for _, id := range []string{"", "has space", "a/b", "tab\there", strings.Repeat("x", 129)} {
		_, err := tk.Entity(id)
		assert.ErrorIs(err, toolset.ErrBadParameter, id)
	}
}

///////////////////////////////////////////////////////////////////////////////
// TESTS - CONNECTIONS

func Test_connection_001(t *testing.T) {
	// Existing connection is returned without initiating
	assert := assert.New(t)
	platform := &mockPlatform{getFn: func(_ context.Context, entity, app string) (*schema.Connection, error) {
		return activeConnection(entity, app), nil
	}}
	entity := newEntity(t, platform)

	conn, err := entity.EnsureConnection(context.Background(), "GitHub")
	require.NoError(t, err)
	assert.True(conn.IsActive())
	assert.Equal("github", conn.App)
	assert.Equal(0, platform.initiates)
}

func Test_connection_002(t *testing.T) {
	// No connection initiates one and returns the redirect
	assert := assert.New(t)
	platform := new(mockPlatform)
	entity := newEntity(t, platform)

	conn, err := entity.EnsureConnection(context.Background(), "github")
	require.NoError(t, err)
	assert.False(conn.IsActive())
	assert.Equal("https://auth.example.com/github", conn.RedirectURL)
	assert.Equal(1, platform.initiates)
}

func Test_connection_003(t *testing.T) {
	// Other errors propagate without initiating
	assert := assert.New(t)
	boom := errors.New("platform unavailable")
	platform := &mockPlatform{getFn: func(context.Context, string, string) (*schema.Connection, error) {
		return nil, boom
	}}
	entity := newEntity(t, platform)

	_, err := entity.EnsureConnection(context.Background(), "github")
	assert.ErrorIs(err, boom)
	assert.Equal(0, platform.initiates)

	_, err = entity.EnsureConnection(context.Background(), " ")
	assert.ErrorIs(err, toolset.ErrBadParameter)
}

func Test_connection_004(t *testing.T) {
	// Cache hit avoids the platform lookup
	assert := assert.New(t)
	platform := &mockPlatform{getFn: func(_ context.Context, entity, app string) (*schema.Connection, error) {
		return activeConnection(entity, app), nil
	}}
	entity := newEntity(t, platform, toolkit.WithCache(cache.NewMemory(time.Hour)))

	for range 3 {
		conn, err := entity.EnsureConnection(context.Background(), "github")
		require.NoError(t, err)
		assert.True(conn.IsActive())
	}
	assert.Equal(1, platform.gets)
}

func Test_connection_005(t *testing.T) {
	// Initiated connections are not cached
	assert := assert.New(t)
	platform := new(mockPlatform)
	entity := newEntity(t, platform, toolkit.WithCache(cache.NewMemory(time.Hour)))

	for range 2 {
		_, err := entity.EnsureConnection(context.Background(), "github")
		require.NoError(t, err)
	}
	assert.Equal(2, platform.gets)
	assert.Equal(2, platform.initiates)
}

func Test_connection_006(t *testing.T) {
	// Wait until a connection becomes active, then cache it
	assert := assert.New(t)
	platform := &mockPlatform{statusFn: func(n int) (*schema.Connection, error) {
		if n < 3 {
			return &schema.Connection{Id: "ca_new", App: "github", Status: schema.StatusInitiated}, nil
		}
		return &schema.Connection{Id: "ca_new", App: "github", Status: schema.StatusActive}, nil
	}}
	c := cache.NewMemory(time.Hour)
	entity := newEntity(t, platform, toolkit.WithPollInterval(time.Millisecond), toolkit.WithCache(c))

	conn, err := entity.WaitUntilActive(context.Background(), "ca_new", time.Second)
	require.NoError(t, err)
	assert.True(conn.IsActive())
	assert.Equal("default", conn.Entity)
	assert.Equal(3, platform.polls)

	cached, err := c.Get(context.Background(), "default", "github")
	require.NoError(t, err)
	assert.Equal("ca_new", cached.Id)
}

func Test_connection_007(t *testing.T) {
	// Failed or expired connections return a conflict
	assert := assert.New(t)
	for _, status := range []schema.ConnectionStatus{schema.StatusFailed, schema.StatusExpired} {
		platform := &mockPlatform{statusFn: func(int) (*schema.Connection, error) {
			return &schema.Connection{Id: "ca_new", Status: status}, nil
		}}
		entity := newEntity(t, platform, toolkit.WithPollInterval(time.Millisecond))
		_, err := entity.WaitUntilActive(context.Background(), "ca_new", time.Second)
		assert.ErrorIs(err, toolset.ErrConflict)
	}
}

func Test_connection_008(t *testing.T) {
	// Timeout
	assert := assert.New(t)
	platform := &mockPlatform{statusFn: func(int) (*schema.Connection, error) {
		return &schema.Connection{Id: "ca_new", Status: schema.StatusInitiated}, nil
	}}
	entity := newEntity(t, platform, toolkit.WithPollInterval(5*time.Millisecond))

	_, err := entity.WaitUntilActive(context.Background(), "ca_new", 30*time.Millisecond)
	assert.ErrorIs(err, toolset.ErrTimeout)

	// Cancellation is not a timeout
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = entity.WaitUntilActive(ctx, "ca_new", time.Second)
	assert.ErrorIs(err, context.Canceled)
}

///////////////////////////////////////////////////////////////////////////////
// TESTS - TOOLS

func Test_tools_001(t *testing.T) {
	assert := assert.New(t)
	platform := &mockPlatform{tools: []schema.Tool{{Name: "GITHUB_STAR"}}}
	tk, err := toolkit.New(platform)
	require.NoError(t, err)

	tools, err := tk.Tools(context.Background(), schema.ToolFilter{Apps: []string{"github", " "}, Tags: []string{"important"}})
	require.NoError(t, err)
	assert.Len(tools, 1)
	assert.Equal([]string{"github"}, platform.filter.Apps)
	assert.Equal([]string{"important"}, platform.filter.Tags)

	_, err = tk.Tools(context.Background(), schema.ToolFilter{Apps: []string{""}, Tags: []string{"important"}})
	assert.ErrorIs(err, toolset.ErrBadParameter)
}
