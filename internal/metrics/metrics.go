package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics exposes Prometheus primitives for the HTTP surface and the
// billing engine.
type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	feesGenerated *prometheus.CounterVec
	receiptUpload *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clubhub_http_requests_total",
		Help: "Counts HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clubhub_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	feesGenerated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clubhub_fees_generated_total",
		Help: "Counts fee generation runs by outcome.",
	}, []string{"status"})

	receiptUpload := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clubhub_receipt_uploads_total",
		Help: "Counts receipt uploads by outcome.",
	}, []string{"status"})

	prometheus.MustRegister(httpRequests, httpDuration, feesGenerated, receiptUpload)

	return &Metrics{
		httpRequests:  httpRequests,
		httpDuration:  httpDuration,
		feesGenerated: feesGenerated,
		receiptUpload: receiptUpload,
	}
}

// Middleware records request counts and latencies per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveGeneration(status string) {
	m.feesGenerated.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveReceiptUpload(status string) {
	m.receiptUpload.WithLabelValues(status).Inc()
}

var Module = fx.Module("metrics",
	fx.Provide(NewMetrics),
)
