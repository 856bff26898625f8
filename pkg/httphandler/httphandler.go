package httphandler

import (
	"errors"
	"net/http"
	"time"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	toolset "github.com/mutablelogic/go-toolset"
	manager "github.com/mutablelogic/go-toolset/pkg/manager"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router registers path items. Relative paths are registered under the
// router prefix.
type Router interface {
	RegisterPath(path string, params *jsonschema.Schema, pathitem httprequest.PathItem) error
}

var _ Router = (*httprouter.Router)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Returned in place of errors which have no status code of their own
const unexpectedError = "An unexpected error occurred"

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the handlers with the router. Requests are
// recorded by the collector, which may be nil.
func RegisterHandlers(manager *manager.Manager, collector *metrics.Collector, router Router) error {
	var result error

	// Convenience function to instrument and register a path item, and
	// accumulate any errors
	register := func(path string, item httprequest.PathItem) {
		label := types.NormalisePath(path)
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			item.WrapHandler(method, func(next http.HandlerFunc) http.HandlerFunc {
				return instrument(collector, label, next)
			})
		}
		result = errors.Join(result, router.RegisterPath(path, nil, item))
	}

	// Register handlers
	register(ExecuteDefaultHandler(manager))
	register(ExecuteGithubHandler(manager))
	register(ExecuteHandler(manager))
	register(AuthHandler(manager))
	register(AuthGithubHandler(manager))
	register(ToolListHandler(manager))
	register(TaskListHandler(manager))
	register(MetricsHandler(collector))

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a toolset.Err to an httpresponse.Err. Other errors are
// replaced with a generic internal error, so their detail is only logged.
func httpErr(err error) error {
	var toolsetErr toolset.Err
	if !errors.As(err, &toolsetErr) {
		return httpresponse.ErrInternalError.With(unexpectedError)
	}
	switch toolsetErr {
	case toolset.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case toolset.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case toolset.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case toolset.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case toolset.ErrTimeout:
		return httpresponse.Err(http.StatusGatewayTimeout).With(err)
	default:
		return httpresponse.ErrInternalError.With(unexpectedError)
	}
}

// statusWriter records the status code written to a response
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// instrument records the method, path pattern, status and duration of
// each request
func instrument(collector *metrics.Collector, path string, handler http.HandlerFunc) http.HandlerFunc {
	if collector == nil {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		handler(sw, r)
		collector.RecordHTTPRequest(r.Method, path, sw.status, time.Since(start))
	}
}
