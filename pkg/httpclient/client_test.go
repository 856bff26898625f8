package httpclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	// Packages
	httpclient "github.com/mutablelogic/go-toolset/pkg/httpclient"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK SERVER

// mockServer records the method, path and query of the last request
type mockServer struct {
	*httptest.Server
	sync.Mutex
	method string
	path   string
	query  url.Values
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	mock := new(mockServer)
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		mock.Lock()
		defer mock.Unlock()
		mock.method = r.Method
		mock.path = r.URL.Path
		mock.query = r.URL.Query()
	}

	mux.HandleFunc("POST /api/auth", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, schema.AuthResponse{RedirectURL: "https://auth.example.com/" + r.URL.Query().Get("app"), Message: "log in"})
	})
	mux.HandleFunc("GET /api/auth_github", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, schema.AuthResponse{Connection: &schema.Connection{Id: "ca_1", App: "github", Status: schema.StatusActive}})
	})
	mux.HandleFunc("POST /api/{$}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, schema.ExecuteResponse{Entity: r.URL.Query().Get("entityId"), Task: "github_star"})
	})
	mux.HandleFunc("POST /api/execute_github_task", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, schema.ExecuteResponse{Entity: r.URL.Query().Get("entityId"), Task: "github_issue", Message: "done"})
	})
	mux.HandleFunc("POST /api/execute/{task}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.PathValue("task") == "missing" {
			http.Error(w, `{"code":404,"reason":"not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, schema.ExecuteResponse{Entity: "default2", Task: r.PathValue("task")})
	})
	mux.HandleFunc("GET /api/tool", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, schema.ListToolsResponse{Count: 1, Body: []schema.Tool{{Name: "GITHUB_STAR"}}})
	})
	mux.HandleFunc("GET /api/task", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, schema.ListTasksResponse{Count: 1, Body: []schema.Task{{Name: "github_star", App: "github"}}})
	})

	mock.Server = httptest.NewServer(mux)
	t.Cleanup(mock.Close)
	return mock
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, mock *mockServer) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(mock.URL + "/api")
	require.NoError(t, err)
	return c
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func TestAuth(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c := newClient(t, mock)

	resp, err := c.Auth(context.Background(), httpclient.WithEntity("alice"), httpclient.WithApp("googlesheets"), httpclient.WithWait(0))
	require.NoError(t, err)
	assert.Equal("https://auth.example.com/googlesheets", resp.RedirectURL)
	assert.Equal(http.MethodPost, mock.method)
	assert.Equal("alice", mock.query.Get("entityId"))
	assert.Equal("0", mock.query.Get("wait"))
}

func TestAuthDefaultWait(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c := newClient(t, mock)

	_, err := c.Auth(context.Background())
	require.NoError(t, err)
	assert.Equal("/api/auth", mock.path)
	assert.False(mock.query.Has("wait"))
}

func TestAuthWait(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c := newClient(t, mock)

	_, err := c.Auth(context.Background(), httpclient.WithWait(30))
	require.NoError(t, err)
	assert.Equal("30", mock.query.Get("wait"))
}

func TestAuthGitHub(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c := newClient(t, mock)

	resp, err := c.AuthGitHub(context.Background())
	require.NoError(t, err)
	assert.Equal(http.MethodGet, mock.method)
	assert.Equal("/api/auth_github", mock.path)
	if assert.NotNil(resp.Connection) {
		assert.True(resp.Connection.IsActive())
	}
}

func TestExecute(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c := newClient(t, mock)

	resp, err := c.Execute(context.Background(), httpclient.WithEntity("alice"))
	require.NoError(t, err)
	assert.Equal("github_star", resp.Task)
	assert.Equal("alice", resp.Entity)
	assert.Equal(http.MethodPost, mock.method)
	assert.Equal("/api/", mock.path)

	resp, err = c.ExecuteGitHub(context.Background(), httpclient.WithEntity("bob"))
	require.NoError(t, err)
	assert.Equal("bob", resp.Entity)
	assert.Equal("github_issue", resp.Task)
}

func TestExecuteTask(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c := newClient(t, mock)

	resp, err := c.ExecuteTask(context.Background(), "sheets_append")
	require.NoError(t, err)
	assert.Equal("sheets_append", resp.Task)
	assert.Equal("/api/execute/sheets_append", mock.path)

	_, err = c.ExecuteTask(context.Background(), "")
	assert.Error(err)

	_, err = c.ExecuteTask(context.Background(), "missing")
	assert.Error(err)
}

func TestListTools(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c := newClient(t, mock)

	resp, err := c.ListTools(context.Background(), httpclient.WithApps("github"), httpclient.WithTags("important", "popular"))
	require.NoError(t, err)
	assert.Equal(uint(1), resp.Count)
	assert.Equal([]string{"github"}, mock.query["app"])
	assert.Equal([]string{"important", "popular"}, mock.query["tag"])
	assert.False(mock.query.Has("action"))
}

func TestListTasks(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c := newClient(t, mock)

	resp, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(uint(1), resp.Count)
	assert.Equal("github_star", resp.Body[0].Name)
}

func TestExecuteEndpointSlash(t *testing.T) {
	assert := assert.New(t)
	mock := newMockServer(t)
	c, err := httpclient.New(mock.URL + "/api/")
	require.NoError(t, err)

	_, err = c.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal("/api/", mock.path)

	_, err = c.ExecuteGitHub(context.Background())
	require.NoError(t, err)
	assert.Equal("/api/execute_github_task", mock.path)
}
