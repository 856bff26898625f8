/*
metrics collects prometheus counters and histograms for HTTP requests,
model calls, tool executions and connection cache lookups. A nil Collector
records nothing.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	prometheus "github.com/prometheus/client_golang/prometheus"
	collectors "github.com/prometheus/client_golang/prometheus/collectors"
	promauto "github.com/prometheus/client_golang/prometheus/promauto"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Collector struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Model
	generateTotal    *prometheus.CounterVec
	generateDuration *prometheus.HistogramVec
	tokensTotal      *prometheus.CounterVec

	// Tools
	toolCallsTotal *prometheus.CounterVec

	// Connections
	connectionsTotal *prometheus.CounterVec
	cacheTotal       *prometheus.CounterVec
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultNamespace = "toolset"
)

// Status label values
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusRedirect = "redirect"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewCollector returns a collector with its own registry. The registry also
// carries the go runtime and process collectors.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		logger:   logger.With(zap.String("component", "metrics")),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(c.registry)

	// HTTP
	c.httpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	c.httpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Model
	c.generateTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generate_requests_total",
			Help:      "Total number of model requests",
		},
		[]string{"provider", "model", "status"},
	)
	c.generateDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Model request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider", "model"},
	)
	c.tokensTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_total",
			Help:      "Total number of tokens used",
		},
		[]string{"provider", "model", "type"}, // type: input, output
	)

	// Tools
	c.toolCallsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of tool calls",
		},
		[]string{"tool", "status"},
	)

	// Connections
	c.connectionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of connection checks",
		},
		[]string{"app", "status"}, // status: ok, redirect, error
	)
	c.cacheTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connection_cache_total",
			Help:      "Total number of connection cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)

	return c
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Registry returns the registry for the collector
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler returns the exposition handler for the registry
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(c.logger),
	})
}

// RecordHTTPRequest records a completed HTTP request
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGenerate records a model call and the tokens it used
func (c *Collector) RecordGenerate(provider, model string, duration time.Duration, usage *schema.Usage, err error) {
	if c == nil {
		return
	}
	c.generateTotal.WithLabelValues(provider, model, status(err)).Inc()
	c.generateDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
	if usage != nil {
		c.tokensTotal.WithLabelValues(provider, model, "input").Add(float64(usage.InputTokens))
		c.tokensTotal.WithLabelValues(provider, model, "output").Add(float64(usage.OutputTokens))
	}
}

// RecordToolCall records the outcome of a tool call
func (c *Collector) RecordToolCall(result schema.ToolResult) {
	if c == nil {
		return
	}
	value := StatusOK
	if result.IsError {
		value = StatusError
	}
	c.toolCallsTotal.WithLabelValues(result.Name, value).Inc()
}

// RecordConnection records a connection check, where status is one of
// StatusOK, StatusRedirect or StatusError
func (c *Collector) RecordConnection(app, status string) {
	if c == nil {
		return
	}
	c.connectionsTotal.WithLabelValues(app, status).Inc()
}

// RecordCache records a connection cache lookup
func (c *Collector) RecordCache(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.cacheTotal.WithLabelValues("hit").Inc()
	} else {
		c.cacheTotal.WithLabelValues("miss").Inc()
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
