package composio

import (
	"net/url"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// CONNECTION OPTIONS

// WithIntegration uses a specific integration when initiating a connection,
// rather than looking one up by app name
func WithIntegration(id string) opt.Opt {
	if id == "" {
		return opt.Error(toolset.ErrBadParameter.With("integration id is required"))
	}
	return opt.SetString(opt.IntegrationKey, id)
}

// WithRedirectURI sets where the user is sent after signing in
func WithRedirectURI(uri string) opt.Opt {
	if u, err := url.Parse(uri); err != nil || !u.IsAbs() {
		return opt.Error(toolset.ErrBadParameter.Withf("invalid redirect uri %q", uri))
	}
	return opt.SetString(opt.RedirectURIKey, uri)
}
