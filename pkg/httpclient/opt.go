package httpclient

import (
	// Packages
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithEntity sets the entity the request is made on behalf of. When not
// set, the server uses its default entity.
func WithEntity(entity string) opt.Opt {
	return opt.SetString(opt.EntityKey, entity)
}

// WithApp sets the app to connect.
func WithApp(app string) opt.Opt {
	return opt.SetString(opt.AppKey, app)
}

// WithWait sets the number of seconds to wait for a connection to become
// active. A wait of 0 returns the sign-in URL without waiting. When not
// set, the server waits for its default.
func WithWait(wait uint) opt.Opt {
	return opt.SetUint(opt.WaitKey, wait)
}

// WithApps filters tools by app.
func WithApps(apps ...string) opt.Opt {
	return opt.AddString(opt.AppKey, apps...)
}

// WithTags filters tools by tag.
func WithTags(tags ...string) opt.Opt {
	return opt.AddString(opt.TagKey, tags...)
}

// WithActions filters tools by action name.
func WithActions(actions ...string) opt.Opt {
	return opt.AddString(opt.ActionKey, actions...)
}
