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

// ListTools returns the tools matching a filter. Use WithApps, WithTags and
// WithActions to set the filter, at least one app or action is required.
func (c *Client) ListTools(ctx context.Context, opts ...opt.Opt) (*schema.ListToolsResponse, error) {
	// Apply options
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Create request
	req := client.NewRequest()
	reqOpts := []client.RequestOpt{client.OptPath("tool")}
	if q := o.Query(opt.AppKey, opt.TagKey, opt.ActionKey); len(q) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(q))
	}

	// Perform request
	var response schema.ListToolsResponse
	if err := c.DoWithContext(ctx, req, &response, reqOpts...); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// ListTasks returns the tasks the server can execute.
func (c *Client) ListTasks(ctx context.Context) (*schema.ListTasksResponse, error) {
	var response schema.ListTasksResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("task")); err != nil {
		return nil, err
	}
	return &response, nil
}
