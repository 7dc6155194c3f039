// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the platform's Prometheus metrics.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  prometheus.Histogram
	ordersCreated prometheus.Counter
	verifications *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_http_requests_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursehub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coursehub_payment_orders_created_total",
			Help: "Gateway orders created",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_payment_verifications_total",
			Help: "Payment verification attempts by outcome",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.ordersCreated,
		c.verifications,
	)

	return c
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordHTTPDuration(d time.Duration) {
	c.httpDuration.Observe(d.Seconds())
}

func (c *Collector) RecordOrderCreated() {
	c.ordersCreated.Inc()
}

// RecordVerification takes one of "success", "signature_mismatch",
// "not_found", "conflict".
func (c *Collector) RecordVerification(outcome string) {
	c.verifications.WithLabelValues(outcome).Inc()
}

// Handler returns the /metrics endpoint for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
