package composio_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolset "github.com/mutablelogic/go-toolset"
	composio "github.com/mutablelogic/go-toolset/pkg/composio"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK PLATFORM

const testKey = "test-api-key"

// mockPlatform serves a subset of the platform API from memory
type mockPlatform struct {
	sync.Mutex
	accounts     []map[string]any
	integrations []map[string]any
	actions      []map[string]any
	executed     []map[string]any
	execute      map[string]any
}

func (p *mockPlatform) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/connectedAccounts", func(w http.ResponseWriter, r *http.Request) {
		p.Lock()
		defer p.Unlock()
		items := []map[string]any{}
		for _, account := range p.accounts {
			if account["clientUniqueUserId"] == r.URL.Query().Get("user_uuid") {
				items = append(items, account)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "page": 1, "totalPages": 1})
	})
	mux.HandleFunc("GET /v1/connectedAccounts/{id}", func(w http.ResponseWriter, r *http.Request) {
		p.Lock()
		defer p.Unlock()
		for _, account := range p.accounts {
			if account["id"] == r.PathValue("id") {
				writeJSON(w, http.StatusOK, account)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	})
	mux.HandleFunc("POST /v1/connectedAccounts", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"connectionStatus":   "INITIATED",
			"connectedAccountId": "ca_" + req["entityId"].(string),
			"redirectUrl":        "https://auth.example.com/login?integration=" + req["integrationId"].(string),
		})
	})
	mux.HandleFunc("GET /v1/integrations", func(w http.ResponseWriter, r *http.Request) {
		items := []map[string]any{}
		for _, integration := range p.integrations {
			if integration["appName"] == r.URL.Query().Get("appName") {
				items = append(items, integration)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	})
	mux.HandleFunc("GET /v2/actions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Query", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{"items": p.actions})
	})
	mux.HandleFunc("POST /v2/actions/{name}/execute", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		req["action"] = r.PathValue("name")
		p.Lock()
		p.executed = append(p.executed, req)
		p.Unlock()
		writeJSON(w, http.StatusOK, p.execute)
	})

	// Check the API key on every request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != testKey {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, srv *httptest.Server) *composio.Client {
	t.Helper()
	c, err := composio.New(testKey, client.OptEndpoint(srv.URL))
	require.NoError(t, err)
	return c
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_client_001(t *testing.T) {
	// Missing API key is rejected
	assert := assert.New(t)
	c, err := composio.New("")
	assert.ErrorIs(err, toolset.ErrBadParameter)
	assert.Nil(c)
}

func Test_client_002(t *testing.T) {
	assert := assert.New(t)
	c, err := composio.New(testKey)
	assert.NoError(err)
	assert.Equal("composio", c.Name())
}

func Test_client_003(t *testing.T) {
	// A wrong API key surfaces the platform error
	assert := assert.New(t)
	srv := new(mockPlatform).server(t)
	c, err := composio.New("wrong-key", client.OptEndpoint(srv.URL))
	require.NoError(t, err)

	_, err = c.GetConnection(t.Context(), "default", "github")
	assert.Error(err)
	assert.NotErrorIs(err, toolset.ErrNoConnectedAccount)
}
