package manager

import (
	"context"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns the tools selected by the request
func (m *Manager) ListTools(ctx context.Context, req schema.ListToolsRequest) (result *schema.ListToolsResponse, err error) {
	// Otel span
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "ListTools",
		attribute.String("filter", req.ToolFilter.String()),
	)
	defer func() {
		if err != nil {
			m.logger.Error("list tools failed", zap.Stringer("filter", req.ToolFilter), zap.Error(err))
		}
		endSpan(err)
	}()

	tools, err := m.toolkit.Tools(ctx, req.ToolFilter)
	if err != nil {
		return nil, err
	}
	return &schema.ListToolsResponse{
		Count: uint(len(tools)),
		Body:  tools,
	}, nil
}
