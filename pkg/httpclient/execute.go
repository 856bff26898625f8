package httpclient

import (
	"context"
	"fmt"

	// Packages
	client "github.com/mutablelogic/go-client"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Execute runs the task at the API root, which stars a repository on
// GitHub. Use WithEntity to set the entity.
func (c *Client) Execute(ctx context.Context, opts ...opt.Opt) (*schema.ExecuteResponse, error) {
	return c.execute(ctx, client.OptReqEndpoint(c.root), opts...)
}

// ExecuteGitHub runs the task which creates a GitHub issue. Use WithEntity
// to set the entity.
func (c *Client) ExecuteGitHub(ctx context.Context, opts ...opt.Opt) (*schema.ExecuteResponse, error) {
	return c.execute(ctx, client.OptPath("execute_github_task"), opts...)
}

// ExecuteTask runs a named task. Use WithEntity to set the entity.
func (c *Client) ExecuteTask(ctx context.Context, task string, opts ...opt.Opt) (*schema.ExecuteResponse, error) {
	if task == "" {
		return nil, fmt.Errorf("task name cannot be empty")
	}
	return c.execute(ctx, client.OptPath("execute", task), opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) execute(ctx context.Context, path client.RequestOpt, opts ...opt.Opt) (*schema.ExecuteResponse, error) {
	// Apply options
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Create request
	req, err := client.NewJSONRequest(struct{}{})
	if err != nil {
		return nil, err
	}
	reqOpts := []client.RequestOpt{path}
	if q := o.Query(opt.EntityKey); len(q) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(q))
	}

	// Perform request
	var response schema.ExecuteResponse
	if err := c.DoWithContext(ctx, req, &response, reqOpts...); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}
