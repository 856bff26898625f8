/*
composio implements an API client for the Composio tool platform, which
manages connections between entities and third-party apps and executes
app actions as tools.
https://docs.composio.dev/api-reference
*/
package composio

import (
	"errors"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolset "github.com/mutablelogic/go-toolset"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

var _ toolset.Platform = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint    = "https://backend.composio.dev/api"
	defaultName = "composio"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new platform client with the given API key. The endpoint
// can be replaced with client.OptEndpoint.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, toolset.ErrBadParameter.With("missing API key")
	}
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("x-api-key", apiKey),
	}, opts...)
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{c}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the platform name
func (*Client) Name() string {
	return defaultName
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// platformErr maps a not-found response onto ErrNotFound, and returns
// other errors unchanged
func platformErr(err error) error {
	var httpErr httpresponse.Err
	if errors.As(err, &httpErr) && int(httpErr) == http.StatusNotFound {
		return toolset.ErrNotFound.With(err)
	}
	return err
}
