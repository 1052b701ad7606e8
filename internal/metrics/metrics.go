package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers request and scoring workflow metrics.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
	scoring  *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dermalyze_http_requests_total",
			Help: "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dermalyze_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		scoring: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dermalyze_scoring_total",
			Help: "Predict workflow outcomes.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(c.requests, c.latency, c.scoring)
	return c
}

// Middleware observes every request's status and latency.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet, so the response still
			// carries the pre-error status. Record what the client will
			// actually receive.
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		c.requests.WithLabelValues(ctx.Method(), ctx.Route().Path, strconv.Itoa(status)).Inc()
		c.latency.Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordScoring counts one predict workflow outcome.
func (c *Collector) RecordScoring(outcome string) {
	c.scoring.WithLabelValues(outcome).Inc()
}

// Handler serves the Prometheus exposition endpoint.
func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}
