package httphandler

import (
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	manager "github.com/mutablelogic/go-toolset/pkg/manager"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /tool
func ToolListHandler(manager *manager.Manager) (string, httprequest.PathItem) {
	return "tool", httprequest.NewPathItem("Tools", "List tools by app, tag or action", "tool").
		Get(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			req := schema.ListToolsRequest{
				ToolFilter: schema.ToolFilter{
					Apps:    query[opt.AppKey],
					Tags:    query[opt.TagKey],
					Actions: query[opt.ActionKey],
				},
			}
			resp, err := manager.ListTools(r.Context(), req)
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
		}, "List tools")
}
