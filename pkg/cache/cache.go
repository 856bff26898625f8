/*
cache stores active connections between entities and apps, so that
repeated requests for the same entity do not need to ask the platform
whether a connection exists.
*/
package cache

import (
	"context"
	"errors"
	"strings"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Cache stores connections keyed by entity and app. Get returns an error
// wrapping ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, entity, app string) (*schema.Connection, error)
	Set(ctx context.Context, conn *schema.Connection) error
	Delete(ctx context.Context, entity, app string) error
	Close() error
}

// FetchFunc returns a connection from the platform on a cache miss
type FetchFunc func(ctx context.Context, entity, app string) (*schema.Connection, error)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Fetch returns a cached connection, or calls fn and caches the result when
// it is active. The boolean result is true on a cache hit. When fn reports
// no connection, any cached entry is removed.
func Fetch(ctx context.Context, c Cache, entity, app string, fn FetchFunc) (*schema.Connection, bool, error) {
	// Cached connection
	if c != nil {
		if conn, err := c.Get(ctx, entity, app); err == nil {
			return conn, true, nil
		} else if !errors.Is(err, toolset.ErrNotFound) {
			return nil, false, err
		}
	}

	// Fetch connection
	conn, err := fn(ctx, entity, app)
	if err != nil {
		if c != nil && (errors.Is(err, toolset.ErrNoConnectedAccount) || errors.Is(err, toolset.ErrNotFound)) {
			err = errors.Join(err, c.Delete(ctx, entity, app))
		}
		return nil, false, err
	}

	// Cache the connection
	if c != nil && conn.IsActive() {
		if err := c.Set(ctx, conn); err != nil {
			return nil, false, err
		}
	}

	// Return the connection
	return conn, false, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func key(entity, app string) string {
	return entity + "/" + strings.ToLower(app)
}

func validate(conn *schema.Connection) error {
	if conn == nil {
		return toolset.ErrBadParameter.With("connection is nil")
	} else if conn.Entity == "" || conn.App == "" {
		return toolset.ErrBadParameter.With("connection requires entity and app")
	}
	return nil
}
