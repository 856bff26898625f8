package httphandler

import (
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	manager "github.com/mutablelogic/go-toolset/pkg/manager"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /task
func TaskListHandler(manager *manager.Manager) (string, httprequest.PathItem) {
	return "task", httprequest.NewPathItem("Tasks", "List tasks", "task").
		Get(func(w http.ResponseWriter, r *http.Request) {
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), manager.ListTasks())
		}, "List tasks")
}
