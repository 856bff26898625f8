package httphandler

import (
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	manager "github.com/mutablelogic/go-toolset/pkg/manager"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /
func ExecuteDefaultHandler(mgr *manager.Manager) (string, httprequest.PathItem) {
	return "{$}", httprequest.NewPathItem("Star", "Star a repository on GitHub on behalf of an entity", "execute").
		Post(executeTask(mgr, manager.TaskGithubStar), "Star a repository")
}

// Path: /execute_github_task
func ExecuteGithubHandler(mgr *manager.Manager) (string, httprequest.PathItem) {
	return "execute_github_task", httprequest.NewPathItem("Issue", "Create an issue on GitHub on behalf of an entity", "execute").
		Post(executeTask(mgr, manager.TaskGithubIssue), "Create an issue")
}

// Path: /execute/{task}
func ExecuteHandler(mgr *manager.Manager) (string, httprequest.PathItem) {
	return "execute/{task}", httprequest.NewPathItem("Execute", "Execute a task on behalf of an entity", "execute").
		Post(executeTask(mgr, ""), "Execute a task")
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// executeTask returns a handler which executes a task. When task is empty,
// the task is taken from the path.
func executeTask(mgr *manager.Manager, task string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req schema.ExecuteRequest
		if err := httprequest.Query(r.URL.Query(), &req); err != nil {
			_ = httpresponse.Error(w, err)
			return
		}
		req.Task = task
		if req.Task == "" {
			req.Task = r.PathValue("task")
		}
		resp, err := mgr.Execute(r.Context(), req)
		if err != nil {
			_ = httpresponse.Error(w, httpErr(err))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
	}
}
