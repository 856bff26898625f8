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

// Path: /auth
func AuthHandler(manager *manager.Manager) (string, httprequest.PathItem) {
	return "auth", httprequest.NewPathItem("Auth", "Connect an entity to an app, returning the sign-in URL when the app is not yet connected", "auth").
		Post(func(w http.ResponseWriter, r *http.Request) {
			authenticate(w, r, manager, "", true)
		}, "Connect an app")
}

// Path: /auth_github
func AuthGithubHandler(manager *manager.Manager) (string, httprequest.PathItem) {
	return "auth_github", httprequest.NewPathItem("Auth GitHub", "Connect an entity to GitHub, returning the sign-in URL when GitHub is not yet connected", "auth").
		Get(func(w http.ResponseWriter, r *http.Request) {
			authenticate(w, r, manager, "github", false)
		}, "Connect GitHub")
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// authenticate connects the app named in the query, or app when set. When
// wait is true and the query has no wait, the sign-in is waited for.
func authenticate(w http.ResponseWriter, r *http.Request, mgr *manager.Manager, app string, wait bool) {
	query := r.URL.Query()
	var req schema.AuthRequest
	if err := httprequest.Query(query, &req); err != nil {
		_ = httpresponse.Error(w, err)
		return
	}
	if app != "" {
		req.App = app
	}
	if wait && !query.Has(opt.WaitKey) {
		req.Wait = manager.DefaultWait
	}
	resp, err := mgr.Authenticate(r.Context(), req)
	if err != nil {
		_ = httpresponse.Error(w, httpErr(err))
		return
	}
	_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
}
