package manager

import (
	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	toolkit "github.com/mutablelogic/go-toolset/pkg/toolkit"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a manager
type Opt func(*Manager) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolkit sets the toolkit used for connections and tools
func WithToolkit(toolkit *toolkit.Toolkit) Opt {
	return func(m *Manager) error {
		if toolkit == nil {
			return toolset.ErrBadParameter.With("toolkit is required")
		}
		m.toolkit = toolkit
		return nil
	}
}

// WithGenerator sets the model client used to execute tasks
func WithGenerator(generator toolset.Generator) Opt {
	return func(m *Manager) error {
		if generator == nil {
			return toolset.ErrBadParameter.With("generator is required")
		}
		m.generator = generator
		return nil
	}
}

// WithTasks adds tasks, replacing any existing tasks with the same name
func WithTasks(tasks ...schema.Task) Opt {
	return func(m *Manager) error {
		for _, task := range tasks {
			if err := m.addTask(task); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithDefaultEntity sets the entity used when a request does not name one
func WithDefaultEntity(entity string) Opt {
	return func(m *Manager) error {
		if entity == "" {
			return toolset.ErrBadParameter.With("default entity is required")
		}
		m.entity = entity
		return nil
	}
}

// WithDefaultModel sets the model used when a task does not name one
func WithDefaultModel(model string) Opt {
	return func(m *Manager) error {
		if model == "" {
			return toolset.ErrBadParameter.With("default model is required")
		}
		m.model = model
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Opt {
	return func(m *Manager) error {
		if logger != nil {
			m.logger = logger
		}
		return nil
	}
}

// WithTracer sets the tracer for manager spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(m *Manager) error {
		if tracer != nil {
			m.tracer = tracer
		}
		return nil
	}
}

// WithMetrics records model calls
func WithMetrics(collector *metrics.Collector) Opt {
	return func(m *Manager) error {
		m.metrics = collector
		return nil
	}
}
