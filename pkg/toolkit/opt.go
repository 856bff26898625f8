package toolkit

import (
	"time"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	cache "github.com/mutablelogic/go-toolset/pkg/cache"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a toolkit
type Opt func(*Toolkit) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithCache caches active connections
func WithCache(c cache.Cache) Opt {
	return func(t *Toolkit) error {
		if c == nil {
			return toolset.ErrBadParameter.With("cache is required")
		}
		t.cache = c
		return nil
	}
}

// WithTracer sets the tracer for toolkit spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(t *Toolkit) error {
		if tracer != nil {
			t.tracer = tracer
		}
		return nil
	}
}

// WithMetrics records connection checks, cache lookups and tool calls
func WithMetrics(m *metrics.Collector) Opt {
	return func(t *Toolkit) error {
		t.metrics = m
		return nil
	}
}

// WithPollInterval sets how often a connection is checked while waiting for
// it to become active
func WithPollInterval(d time.Duration) Opt {
	return func(t *Toolkit) error {
		if d <= 0 {
			return toolset.ErrBadParameter.With("poll interval must be positive")
		}
		t.poll = d
		return nil
	}
}

// WithConcurrency sets how many tool calls run at once
func WithConcurrency(n int) Opt {
	return func(t *Toolkit) error {
		if n < 1 {
			return toolset.ErrBadParameter.With("concurrency must be at least 1")
		}
		t.concurrency = n
		return nil
	}
}
