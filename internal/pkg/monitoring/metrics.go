package monitoring

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code", "service"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "service"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of requests to the hosted backend in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"method", "table", "status", "service"},
	)

	cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_lookups_total",
			Help: "Total number of query cache lookups by result",
		},
		[]string{"namespace", "result", "service"},
	)

	eventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"event", "status", "service"},
	)

	registerOnce sync.Once
)

// unmatchedRoute labels requests no chi route matched.
const unmatchedRoute = "unmatched"

type MetricsCollector struct {
	serviceName string
}

// NewMetricsCollector registers the collectors with the default registry on
// first use.
func NewMetricsCollector(serviceName string) *MetricsCollector {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			backendRequestDuration,
			cacheLookupsTotal,
			eventsPublishedTotal,
		)
	})
	return &MetricsCollector{serviceName: serviceName}
}

func (m *MetricsCollector) RecordHTTPRequest(method, route, statusCode string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, statusCode, m.serviceName).Inc()
	httpRequestDuration.WithLabelValues(method, route, m.serviceName).Observe(duration.Seconds())
}

func (m *MetricsCollector) RecordBackendRequest(method, table string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	backendRequestDuration.WithLabelValues(method, table, status, m.serviceName).Observe(duration.Seconds())
}

func (m *MetricsCollector) RecordCacheLookup(namespace string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(namespace, result, m.serviceName).Inc()
}

func (m *MetricsCollector) RecordEventPublished(event string, success bool) {
	eventsPublishedTotal.WithLabelValues(event, strconv.FormatBool(success), m.serviceName).Inc()
}

func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}

// HTTPMiddleware records one sample per request, labelled with the matched
// chi route pattern so path parameters do not explode cardinality.
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		route := unmatchedRoute
		if routeContext := chi.RouteContext(r.Context()); routeContext != nil && routeContext.RoutePattern() != "" {
			route = routeContext.RoutePattern()
		}
		m.RecordHTTPRequest(r.Method, route, strconv.Itoa(wrapper.statusCode), time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
