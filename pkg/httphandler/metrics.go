package httphandler

import (
	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	metrics "github.com/mutablelogic/go-toolset/pkg/metrics"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /metrics
func MetricsHandler(collector *metrics.Collector) (string, httprequest.PathItem) {
	return "metrics", httprequest.NewPathItem("Metrics", "Prometheus metrics", "metrics").
		Get(collector.Handler().ServeHTTP, "Prometheus metrics")
}
