// Copyright (c) 2026 DSMovie. All rights reserved.

// Package metrics exposes Prometheus instrumentation for the DSMovie API.
//
// # Architecture
//
// A single [Collector] is constructed in main and shared by the HTTP
// middleware and the score service. The registry is served on GET /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the service-level Prometheus metrics.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	scoreSubmissionsTotal *prometheus.CounterVec
	moviesCreatedTotal    prometheus.Counter
}

// NewCollector registers all metrics with the given registry and returns the
// collector. Passing nil registers against a fresh registry.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Collector{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dsmovie_http_requests_total",
			Help: "Total number of HTTP requests by method, route pattern, and status",
		}, []string{"method", "route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dsmovie_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "route"}),

		scoreSubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dsmovie_score_submissions_total",
			Help: "Total number of accepted score submissions, by kind (new or replaced)",
		}, []string{"kind"}),

		moviesCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "dsmovie_movies_created_total",
			Help: "Total number of movies inserted into the catalog",
		}),
	}
}

// Handler returns the /metrics scrape handler for the given registry.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordScoreSubmission counts an accepted submission. replaced tells whether
// the identity superseded an earlier score for the same movie.
func (c *Collector) RecordScoreSubmission(replaced bool) {
	kind := "new"
	if replaced {
		kind = "replaced"
	}
	c.scoreSubmissionsTotal.WithLabelValues(kind).Inc()
}

// RecordMovieCreated counts a successful catalog insert.
func (c *Collector) RecordMovieCreated() {
	c.moviesCreatedTotal.Inc()
}

// # HTTP Instrumentation

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Instrument is an HTTP middleware recording request counts and latency.
//
// The raw URL path would explode label cardinality (every movie id becomes a
// distinct series), so the route label uses only the leading path segment.
func (c *Collector) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		wrapped := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(wrapped, request)

		route := routeLabel(request.URL.Path)
		c.requestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(wrapped.status)).Inc()
		c.requestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}

// routeLabel reduces a request path to its first two segments ("/api/v1" is
// collapsed into the prefix).
func routeLabel(path string) string {
	const prefix = "/api/v1/"
	if len(path) > len(prefix) && path[:len(prefix)] == prefix {
		rest := path[len(prefix):]
		for i := 0; i < len(rest); i++ {
			if rest[i] == '/' {
				rest = rest[:i]
				break
			}
		}
		return prefix + rest
	}
	return path
}
