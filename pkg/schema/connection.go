package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ConnectionStatus is the state of a connection between an entity and an app
type ConnectionStatus string

// Connection is a stored credential link between an entity and a
// third-party app. When the connection has just been initiated, the
// RedirectURL is where the user signs in.
type Connection struct {
	Id          string           `json:"id"`
	Entity      string           `json:"entityId,omitempty"`
	App         string           `json:"app,omitempty"`
	Status      ConnectionStatus `json:"status"`
	RedirectURL string           `json:"redirectUrl,omitempty"`
	CreatedAt   time.Time        `json:"createdAt,omitzero"`
	UpdatedAt   time.Time        `json:"updatedAt,omitzero"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	StatusInitiated ConnectionStatus = "INITIATED"
	StatusActive    ConnectionStatus = "ACTIVE"
	StatusFailed    ConnectionStatus = "FAILED"
	StatusExpired   ConnectionStatus = "EXPIRED"
)

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Connection) String() string {
	return types.Stringify(c)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsActive returns true if the connection can be used to run tools
func (c Connection) IsActive() bool {
	return c.Status == StatusActive
}

// IsTerminal returns true if the connection can never become active
func (c Connection) IsTerminal() bool {
	return c.Status == StatusFailed || c.Status == StatusExpired
}
