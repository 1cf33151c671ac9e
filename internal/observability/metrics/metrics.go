// Package metrics exposes Prometheus instruments for the HTTP surface and
// the request limiter.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	rateLimitAllowed *prometheus.CounterVec
	rateLimitDenied  *prometheus.CounterVec
	invoicesCreated  prometheus.Counter
}

// New builds application counters and registers them with the default
// registry. Safe to call once per process.
func New() *Metrics {
	m := &Metrics{
		rateLimitAllowed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_allowed_total",
				Help: "Requests admitted by the rate limiter",
			},
			[]string{"scope"},
		),
		rateLimitDenied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_denied_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"scope"},
		),
		invoicesCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invoices_created_total",
				Help: "Invoices registered through the API",
			},
		),
	}
	prometheus.MustRegister(m.rateLimitAllowed, m.rateLimitDenied, m.invoicesCreated)
	return m
}

// RecordRateLimitDecision counts a limiter verdict for the given scope.
func (m *Metrics) RecordRateLimitDecision(scope string, allowed bool) {
	if m == nil {
		return
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		scope = "default"
	}
	if allowed {
		m.rateLimitAllowed.WithLabelValues(scope).Inc()
		return
	}
	m.rateLimitDenied.WithLabelValues(scope).Inc()
}

// RecordInvoiceCreated counts a successful invoice registration.
func (m *Metrics) RecordInvoiceCreated() {
	if m == nil {
		return
	}
	m.invoicesCreated.Inc()
}

// HTTPMetrics records per-request counters and latency histograms.
type HTTPMetrics struct {
	serviceName string
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewHTTPMetrics builds and registers the HTTP instruments.
func NewHTTPMetrics() *HTTPMetrics {
	m := &HTTPMetrics{
		serviceName: "notas",
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "route", "status"},
		),
	}
	prometheus.MustRegister(m.requests, m.duration)
	return m
}

// GinMiddleware records request counts and latencies per route.
func (m *HTTPMetrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		m.requests.WithLabelValues(m.serviceName, method, route, status).Inc()
		m.duration.WithLabelValues(m.serviceName, method, route, status).Observe(time.Since(start).Seconds())
	}
}
