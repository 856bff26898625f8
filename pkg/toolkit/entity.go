package toolkit

import (
	"context"
	"errors"
	"strings"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolset "github.com/mutablelogic/go-toolset"
	cache "github.com/mutablelogic/go-toolset/pkg/cache"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Entity performs toolkit operations on behalf of one entity
type Entity struct {
	*Toolkit
	id string
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Id returns the entity identifier
func (e *Entity) Id() string {
	return e.id
}

// EnsureConnection returns the connection between the entity and an app.
// When there is no connection, a new one is initiated and returned with the
// redirect URL the user must visit to sign in. Any other error is returned.
func (e *Entity) EnsureConnection(ctx context.Context, app string, opts ...opt.Opt) (result *schema.Connection, err error) {
	app = strings.ToLower(strings.TrimSpace(app))
	if app == "" {
		return nil, toolset.ErrBadParameter.With("app is required")
	}

	// Otel span
	ctx, endSpan := otel.StartSpan(e.tracer, ctx, "EnsureConnection",
		attribute.String("entity", e.id),
		attribute.String("app", app),
	)
	defer func() { endSpan(err) }()

	// Existing connection
	conn, hit, err := cache.Fetch(ctx, e.cache, e.id, app, e.platform.GetConnection)
	if e.cache != nil {
		e.metrics.RecordCache(hit)
	}
	switch {
	case err == nil:
		e.metrics.RecordConnection(app, connectionStatus(conn))
		return conn, nil
	case !errors.Is(err, toolset.ErrNoConnectedAccount):
		e.metrics.RecordConnection(app, metrics.StatusError)
		return nil, err
	}

	// No connection, so initiate one
	conn, err = e.platform.InitiateConnection(ctx, e.id, app, opts...)
	if err != nil {
		e.metrics.RecordConnection(app, metrics.StatusError)
		return nil, err
	}
	e.metrics.RecordConnection(app, connectionStatus(conn))
	return conn, nil
}

// WaitUntilActive polls a connection until it becomes active. A connection
// which fails or expires returns ErrConflict, and ErrTimeout is returned
// when the timeout elapses first. A zero timeout waits until the context
// is done.
func (e *Entity) WaitUntilActive(ctx context.Context, id string, timeout time.Duration) (result *schema.Connection, err error) {
	if id == "" {
		return nil, toolset.ErrBadParameter.With("connection id is required")
	}

	// Otel span
	ctx, endSpan := otel.StartSpan(e.tracer, ctx, "WaitUntilActive",
		attribute.String("entity", e.id),
		attribute.String("connection", id),
		attribute.String("timeout", timeout.String()),
	)
	defer func() { endSpan(err) }()

	// Set the deadline
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(e.poll)
	defer ticker.Stop()
	for {
		conn, err := e.platform.Connection(ctx, id)
		switch {
		case ctx.Err() != nil:
			return nil, waitErr(ctx, id)
		case err != nil:
			return nil, err
		case conn.IsActive():
			if conn.Entity == "" {
				conn.Entity = e.id
			}
			if e.cache != nil && conn.App != "" {
				if err := e.cache.Set(ctx, conn); err != nil {
					return nil, err
				}
			}
			return conn, nil
		case conn.IsTerminal():
			return nil, toolset.ErrConflict.Withf("connection %q is %s", id, strings.ToLower(string(conn.Status)))
		}

		// Wait for the next poll
		select {
		case <-ctx.Done():
			return nil, waitErr(ctx, id)
		case <-ticker.C:
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func waitErr(ctx context.Context, id string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return toolset.ErrTimeout.Withf("connection %q is not active", id)
	}
	return ctx.Err()
}

func connectionStatus(conn *schema.Connection) string {
	if conn.IsActive() {
		return metrics.StatusOK
	}
	return metrics.StatusRedirect
}
