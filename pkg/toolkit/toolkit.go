/*
toolkit performs operations on behalf of an entity: checking for and
initiating connections to apps, waiting for sign-in to complete, listing
the tools an app provides and running the tool calls a model asks for.
*/
package toolkit

import (
	"context"
	"strings"
	"time"
	"unicode"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolset "github.com/mutablelogic/go-toolset"
	cache "github.com/mutablelogic/go-toolset/pkg/cache"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Toolkit struct {
	platform    toolset.Platform
	cache       cache.Cache
	tracer      trace.Tracer
	metrics     *metrics.Collector
	poll        time.Duration
	concurrency int
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultPollInterval = time.Second
	DefaultConcurrency  = 4
	maxEntityLength     = 128
	tracerName          = "toolkit"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a toolkit which uses the platform for connections and tools
func New(platform toolset.Platform, opts ...Opt) (*Toolkit, error) {
	if platform == nil {
		return nil, toolset.ErrBadParameter.With("platform is required")
	}
	self := &Toolkit{
		platform:    platform,
		tracer:      noop.NewTracerProvider().Tracer(tracerName),
		poll:        DefaultPollInterval,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		if err := opt(self); err != nil {
			return nil, err
		}
	}
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Entity returns a handle for operations on behalf of an entity. The
// identifier must be non-empty, at most 128 characters and contain no
// whitespace or '/'.
func (t *Toolkit) Entity(id string) (*Entity, error) {
	if err := validateEntity(id); err != nil {
		return nil, err
	}
	return &Entity{Toolkit: t, id: id}, nil
}

// Tools returns the tools selected by the filter
func (t *Toolkit) Tools(ctx context.Context, filter schema.ToolFilter) (result []schema.Tool, err error) {
	filter = normaliseFilter(filter)
	if filter.IsEmpty() {
		return nil, toolset.ErrBadParameter.With("filter requires apps or actions")
	}

	// Otel span
	ctx, endSpan := otel.StartSpan(t.tracer, ctx, "Tools",
		attribute.String("filter", filter.String()),
	)
	defer func() { endSpan(err) }()

	// Return the tools
	return t.platform.ListTools(ctx, filter)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func validateEntity(id string) error {
	switch {
	case id == "":
		return toolset.ErrBadParameter.With("entity is required")
	case len(id) > maxEntityLength:
		return toolset.ErrBadParameter.Withf("entity exceeds %d characters", maxEntityLength)
	case strings.ContainsFunc(id, func(r rune) bool { return unicode.IsSpace(r) || r == '/' }):
		return toolset.ErrBadParameter.Withf("invalid entity %q", id)
	}
	return nil
}

// normaliseFilter removes empty values from the filter
func normaliseFilter(filter schema.ToolFilter) schema.ToolFilter {
	return schema.ToolFilter{
		Apps:    compact(filter.Apps),
		Tags:    compact(filter.Tags),
		Actions: compact(filter.Actions),
	}
}

func compact(values []string) []string {
	var result []string
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result
}
