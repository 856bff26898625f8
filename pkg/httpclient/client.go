package httpclient

import (
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a toolset HTTP client that wraps the base HTTP client
// and provides typed methods for interacting with the toolset API.
type Client struct {
	*client.Client
	root string
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new toolset HTTP client with the given base URL and options.
// The url parameter should point to the toolset API endpoint, e.g.
// "http://localhost:8084/api".
func New(url string, opts ...client.ClientOpt) (*Client, error) {
	c := &Client{root: strings.TrimRight(url, "/") + "/"}
	if client, err := client.New(append([]client.ClientOpt{client.OptEndpoint(url)}, opts...)...); err != nil {
		return nil, err
	} else {
		c.Client = client
	}
	return c, nil
}
