/*
openai implements a chat completion client for the OpenAI API, and for
servers which implement the same API.
https://platform.openai.com/docs/api-reference/chat
*/
package openai

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	toolset "github.com/mutablelogic/go-toolset"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

var _ toolset.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint    = "https://api.openai.com/v1"
	defaultName = "openai"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new OpenAI API client with the given API key. An empty key
// is accepted for compatible servers which do not require one.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	defaults := []client.ClientOpt{
		client.OptEndpoint(endPoint),
	}
	if apiKey != "" {
		defaults = append(defaults, client.OptReqToken(client.Token{Scheme: client.Bearer, Value: apiKey}))
	}
	if c, err := client.New(append(defaults, opts...)...); err != nil {
		return nil, err
	} else {
		return &Client{c}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the provider name
func (*Client) Name() string {
	return defaultName
}
