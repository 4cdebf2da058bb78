package server

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kitchen/internal/store"
)

// Metrics holds the HTTP instruments exported on the metrics endpoint.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the HTTP instruments, plus connection pool statistics
// when db is non-nil.
func NewMetrics(registry *prometheus.Registry, db *sql.DB) *Metrics {
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kitchen_http_requests_total",
				Help: "Total number of HTTP requests by route and status.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kitchen_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration)
	if db != nil {
		registry.MustRegister(collectors.NewDBStatsCollector(db, "kitchen"))
	}
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records every routed request under its route name, which keeps
// the label set bounded regardless of ids in the path.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil && current.GetName() != "" {
			route = current.GetName()
		}
		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func poolOf(st *store.Store) *sql.DB {
	if st == nil || st.DB() == nil {
		return nil
	}
	pool, err := st.DB().DB()
	if err != nil {
		return nil
	}
	return pool
}
