package cache

import (
	"context"
	"sync"
	"time"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type connts struct {
	ts   time.Time
	conn schema.Connection
}

// Memory is an in-process cache with a time-to-live for each entry
type Memory struct {
	sync.Mutex
	ttl  time.Duration
	conn map[string]connts
}

var _ Cache = (*Memory)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultTTL = 5 * time.Minute
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMemory returns an in-memory cache. A zero ttl uses DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	self := new(Memory)
	if ttl > 0 {
		self.ttl = ttl
	} else {
		self.ttl = DefaultTTL
	}
	self.conn = make(map[string]connts)
	return self
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (m *Memory) Get(_ context.Context, entity, app string) (*schema.Connection, error) {
	m.Lock()
	defer m.Unlock()

	key := key(entity, app)
	if entry, ok := m.conn[key]; ok {
		if time.Since(entry.ts) < m.ttl {
			return types.Ptr(entry.conn), nil
		}
		// Expired entry
		delete(m.conn, key)
	}
	return nil, toolset.ErrNotFound.Withf("connection %q", key)
}

// Set stores an active connection. Other connections remove any existing
// entry for the entity and app.
func (m *Memory) Set(_ context.Context, conn *schema.Connection) error {
	if err := validate(conn); err != nil {
		return err
	}

	m.Lock()
	defer m.Unlock()

	key := key(conn.Entity, conn.App)
	if conn.IsActive() {
		m.conn[key] = connts{ts: time.Now(), conn: types.Value(conn)}
	} else {
		delete(m.conn, key)
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, entity, app string) error {
	m.Lock()
	defer m.Unlock()
	delete(m.conn, key(entity, app))
	return nil
}

// Close removes all entries
func (m *Memory) Close() error {
	m.Lock()
	defer m.Unlock()
	clear(m.conn)
	return nil
}

// Len returns the number of entries, including expired entries which have
// not been pruned
func (m *Memory) Len() int {
	m.Lock()
	defer m.Unlock()
	return len(m.conn)
}
