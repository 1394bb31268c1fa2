package server

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute labels requests no route matched, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "info_http_requests_total",
			Help: "Total number of HTTP requests received by the service.",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "info_http_request_duration_seconds",
			Help:    "Duration of HTTP requests handled by the service.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	processStartTimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "info_process_start_time_seconds",
			Help: "Unix time the HTTP server started measuring uptime from.",
		},
	)

	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "info_build_info",
			Help: "Always 1; labelled with the service and Go versions.",
		},
		[]string{"version", "go_version"},
	)

	panicRecoveries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "info_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		processStartTimeSeconds,
		buildInfo,
		panicRecoveries,
	)
}

func recordStart(startedAt time.Time) {
	processStartTimeSeconds.Set(float64(startedAt.Unix()))
	buildInfo.WithLabelValues(ServiceVersion, runtime.Version()).Set(1)
}

// metricsMiddleware records basic request metrics for Prometheus (RPS and latency).
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		durationSeconds := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		httpRequestsTotal.WithLabelValues(route, r.Method, status).Inc()
		httpRequestDurationSeconds.WithLabelValues(route, r.Method, status).Observe(durationSeconds)
	})
}
