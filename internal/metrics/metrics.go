// Package metrics exposes Prometheus counters for the service's domain
// operations.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeStoreError      = "store_error"
)

// Collector holds the service metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	bookings       *prometheus.CounterVec
	reports        *prometheus.CounterVec
	adoptions      *prometheus.CounterVec
	filterResults  prometheus.Histogram
	eventsConsumed *prometheus.CounterVec
}

// NewCollector registers every metric under the given service label.
func NewCollector(service string) *Collector {
	constLabels := prometheus.Labels{"service": service}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_bookings_total",
			Help:        "Appointment submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"clinic_id", "outcome"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "animal_reports_total",
			Help:        "Animal report submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		adoptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "adoption_requests_total",
			Help:        "Adoption request submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		filterResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "adoption_filter_results",
			Help:        "Number of animals returned per catalog filter",
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32},
			ConstLabels: constLabels,
		}),
		eventsConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_consumed_total",
			Help:        "Inbound events by type and outcome",
			ConstLabels: constLabels,
		}, []string{"type", "outcome"}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpRequests,
		c.httpDuration,
		c.bookings,
		c.reports,
		c.adoptions,
		c.filterResults,
		c.eventsConsumed,
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) RecordBooking(clinicID, outcome string) {
	c.bookings.WithLabelValues(clinicID, outcome).Inc()
}

func (c *Collector) RecordReport(outcome string) { c.reports.WithLabelValues(outcome).Inc() }

func (c *Collector) RecordAdoptionRequest(outcome string) { c.adoptions.WithLabelValues(outcome).Inc() }

func (c *Collector) RecordFilterResult(n int) { c.filterResults.Observe(float64(n)) }

func (c *Collector) RecordEventConsumed(eventType, outcome string) {
	c.eventsConsumed.WithLabelValues(eventType, outcome).Inc()
}

// Middleware records request counts and latency per matched route.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.httpRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RegisterRoutes mounts GET /metrics.
func (c *Collector) RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})))
}

// Outcome maps an operation error onto an outcome label.
func Outcome(err error, isValidation func(error) bool) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case isValidation(err):
		return OutcomeValidationError
	default:
		return OutcomeStoreError
	}
}
