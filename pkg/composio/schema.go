package composio

import (
	"encoding/json"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - Platform REST API wire format

///////////////////////////////////////////////////////////////////////////////
// CONNECTED ACCOUNTS

// connectedAccount is a connection between an entity and an app
type connectedAccount struct {
	Id                 string    `json:"id"`
	Status             string    `json:"status"`
	AppName            string    `json:"appName"`
	IntegrationId      string    `json:"integrationId,omitempty"`
	ClientUniqueUserId string    `json:"clientUniqueUserId,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitzero"`
	UpdatedAt          time.Time `json:"updatedAt,omitzero"`
}

// connectedAccountList is the response from GET /v1/connectedAccounts
type connectedAccountList struct {
	Items      []connectedAccount `json:"items"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// initiateConnectionRequest is the request body for POST /v1/connectedAccounts
type initiateConnectionRequest struct {
	IntegrationId string         `json:"integrationId"`
	EntityId      string         `json:"entityId"`
	RedirectUri   string         `json:"redirectUri,omitempty"`
	Data          map[string]any `json:"data"`
}

// initiateConnectionResponse is the response from POST /v1/connectedAccounts
type initiateConnectionResponse struct {
	ConnectionStatus   string `json:"connectionStatus"`
	ConnectedAccountId string `json:"connectedAccountId"`
	RedirectUrl        string `json:"redirectUrl"`
}

///////////////////////////////////////////////////////////////////////////////
// INTEGRATIONS

// integration is the platform-side OAuth configuration for an app
type integration struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	AppName string `json:"appName"`
	Enabled bool   `json:"enabled"`
}

// integrationList is the response from GET /v1/integrations
type integrationList struct {
	Items []integration `json:"items"`
}

///////////////////////////////////////////////////////////////////////////////
// ACTIONS

// action is an app API call exposed as a tool
type action struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"displayName,omitempty"`
	Description string          `json:"description"`
	AppName     string          `json:"appName"`
	Tags        []string        `json:"tags,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"` // JSON Schema
}

// actionList is the response from GET /v2/actions
type actionList struct {
	Items []action `json:"items"`
}

// executeRequest is the request body for POST /v2/actions/{name}/execute
type executeRequest struct {
	EntityId string          `json:"entityId"`
	Input    json.RawMessage `json:"input"`
}

// executeResponse is the response from POST /v2/actions/{name}/execute.
// Older API versions spell the success flag "successfull".
type executeResponse struct {
	Data        json.RawMessage `json:"data"`
	Error       *string         `json:"error"`
	Successfull *bool           `json:"successfull,omitempty"`
	Successful  *bool           `json:"successful,omitempty"`
}
