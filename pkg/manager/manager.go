/*
manager runs tasks on behalf of entities: it makes sure the entity has
connected the app a task needs, asks the model to carry out the task with
the app's tools, and runs the tool calls the model makes.
*/
package manager

import (
	"sync"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	toolkit "github.com/mutablelogic/go-toolset/pkg/toolkit"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Manager struct {
	sync.RWMutex
	toolkit   *toolkit.Toolkit
	generator toolset.Generator
	tasks     map[string]schema.Task
	entity    string
	model     string
	logger    *zap.Logger
	tracer    trace.Tracer
	metrics   *metrics.Collector
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultEntity = "default2"
	DefaultModel  = "gpt-4o"
	DefaultApp    = "googlesheets"
	tracerName    = "manager"
)

// DefaultWait is the number of seconds to wait for a sign-in when the
// caller does not say, and MaxWait is the longest wait accepted
const (
	DefaultWait = 60
	MaxWait     = 300
)

// Returned when the entity needs to sign in before a task can run
const AuthMessage = "Please log in to continue and then call this API again"

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewManager returns a manager with the built-in tasks. A toolkit is
// required, and a generator is required to execute tasks.
func NewManager(opts ...Opt) (*Manager, error) {
	m := &Manager{
		tasks:  make(map[string]schema.Task),
		entity: DefaultEntity,
		model:  DefaultModel,
		logger: zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}

	// Built-in tasks
	for _, task := range builtinTasks() {
		if err := m.addTask(task); err != nil {
			return nil, err
		}
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	// Check for a toolkit
	if m.toolkit == nil {
		return nil, toolset.ErrBadParameter.With("toolkit is required")
	}
	m.logger = m.logger.With(zap.String("component", "manager"))

	// Return success
	return m, nil
}
