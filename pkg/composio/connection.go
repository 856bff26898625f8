package composio

import (
	"context"
	"net/url"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolset "github.com/mutablelogic/go-toolset"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetConnection returns the most recent active connection between an entity
// and an app, or an error wrapping ErrNoConnectedAccount
func (c *Client) GetConnection(ctx context.Context, entity, app string) (*schema.Connection, error) {
	if entity == "" || app == "" {
		return nil, toolset.ErrBadParameter.With("entity and app are required")
	}

	// Request active connections for the entity
	query := url.Values{
		"user_uuid":      {entity},
		"appNames":       {app},
		"showActiveOnly": {"true"},
	}
	var response connectedAccountList
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v1", "connectedAccounts"), client.OptQuery(query)); err != nil {
		return nil, platformErr(err)
	}

	// Return the first active connection for the app
	for _, account := range response.Items {
		if !strings.EqualFold(account.AppName, app) {
			continue
		}
		if conn := connectionFromAccount(account, entity); conn.IsActive() {
			return conn, nil
		}
	}

	// No connection
	return nil, toolset.ErrNoConnectedAccount.Withf("entity %q app %q", entity, app)
}

// InitiateConnection starts a new connection between an entity and an app,
// returning the connection with the redirect URL for sign-in
func (c *Client) InitiateConnection(ctx context.Context, entity, app string, opts ...opt.Opt) (*schema.Connection, error) {
	if entity == "" || app == "" {
		return nil, toolset.ErrBadParameter.With("entity and app are required")
	}

	// Apply options
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Resolve the integration
	integrationId := o.GetString(opt.IntegrationKey)
	if integrationId == "" {
		if integration, err := c.integrationForApp(ctx, app); err != nil {
			return nil, err
		} else {
			integrationId = integration.Id
		}
	}

	// Create the connection
	payload, err := client.NewJSONRequest(initiateConnectionRequest{
		IntegrationId: integrationId,
		EntityId:      entity,
		RedirectUri:   o.GetString(opt.RedirectURIKey),
		Data:          map[string]any{},
	})
	if err != nil {
		return nil, err
	}
	var response initiateConnectionResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("v1", "connectedAccounts")); err != nil {
		return nil, platformErr(err)
	}

	// Return the connection
	return &schema.Connection{
		Id:          response.ConnectedAccountId,
		Entity:      entity,
		App:         app,
		Status:      schema.ConnectionStatus(strings.ToUpper(response.ConnectionStatus)),
		RedirectURL: response.RedirectUrl,
	}, nil
}

// Connection returns a connection by identifier
func (c *Client) Connection(ctx context.Context, id string) (*schema.Connection, error) {
	if id == "" {
		return nil, toolset.ErrBadParameter.With("connection id is required")
	}
	var response connectedAccount
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v1", "connectedAccounts", id)); err != nil {
		return nil, platformErr(err)
	}
	return connectionFromAccount(response, response.ClientUniqueUserId), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// integrationForApp returns the first enabled integration for an app
func (c *Client) integrationForApp(ctx context.Context, app string) (*integration, error) {
	var response integrationList
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v1", "integrations"), client.OptQuery(url.Values{"appName": {app}})); err != nil {
		return nil, platformErr(err)
	}
	for i := range response.Items {
		if response.Items[i].Enabled {
			return &response.Items[i], nil
		}
	}
	return nil, toolset.ErrNotFound.Withf("no integration for app %q", app)
}

func connectionFromAccount(account connectedAccount, entity string) *schema.Connection {
	return &schema.Connection{
		Id:        account.Id,
		Entity:    entity,
		App:       strings.ToLower(account.AppName),
		Status:    schema.ConnectionStatus(strings.ToUpper(account.Status)),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}
