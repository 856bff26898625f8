package httpclient

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Auth connects an entity to an app. Use WithEntity, WithApp and WithWait
// to set the request parameters. When the app is not yet connected and the
// wait is 0, the response carries the sign-in URL.
func (c *Client) Auth(ctx context.Context, opts ...opt.Opt) (*schema.AuthResponse, error) {
	return c.auth(ctx, "auth", opts...)
}

// AuthGitHub connects an entity to GitHub. Use WithEntity and WithWait to
// set the request parameters.
func (c *Client) AuthGitHub(ctx context.Context, opts ...opt.Opt) (*schema.AuthResponse, error) {
	return c.auth(ctx, "auth_github", opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) auth(ctx context.Context, path string, opts ...opt.Opt) (*schema.AuthResponse, error) {
	// Apply options
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Create request, auth_github is a GET request
	var req client.Payload
	if path == "auth_github" {
		req = client.NewRequest()
	} else if req, err = client.NewJSONRequest(struct{}{}); err != nil {
		return nil, err
	}
	reqOpts := []client.RequestOpt{client.OptPath(path)}
	if q := o.Query(opt.EntityKey, opt.AppKey, opt.WaitKey); len(q) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(q))
	}

	// Perform request
	var response schema.AuthResponse
	if err := c.DoWithContext(ctx, req, &response, reqOpts...); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}
