// Package metrics exposes Prometheus counters for the scoring service.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scoring"

// Generation outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder owns a private registry so only service metrics are exposed.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	rowsScored     prometheus.Counter
	rowsSummarized prometheus.Counter
	generations    *prometheus.CounterVec
	sourcesDeleted *prometheus.CounterVec
	jobsEnqueued   prometheus.Counter
	jobsCompleted  *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		rowsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rows_scored_total",
			Help: "Rows evaluated by the scoring pipeline.",
		}),
		rowsSummarized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rows_summarized_total",
			Help: "Rows dispatched to generation back-ends.",
		}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "generation_calls_total",
			Help: "Generation calls by model id and outcome.",
		}, []string{"model", "outcome"}),
		sourcesDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "source_objects_deleted_total",
			Help: "Source CSV objects removed after a final run.",
		}, []string{"handler"}),
		jobsEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "jobs", Name: "enqueued_total",
			Help: "Evaluation jobs enqueued.",
		}),
		jobsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "jobs", Name: "completed_total",
			Help: "Evaluation jobs finished by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		r.httpRequests, r.httpDuration, r.rowsScored, r.rowsSummarized,
		r.generations, r.sourcesDeleted, r.jobsEnqueued, r.jobsCompleted,
	)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) ObserveHTTP(route, method string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (r *Recorder) RowsScored(n int) {
	if r == nil {
		return
	}
	r.rowsScored.Add(float64(n))
}

func (r *Recorder) RowsSummarized(n int) {
	if r == nil {
		return
	}
	r.rowsSummarized.Add(float64(n))
}

func (r *Recorder) Generation(model, outcome string) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(model, outcome).Inc()
}

func (r *Recorder) SourceDeleted(handler string) {
	if r == nil {
		return
	}
	r.sourcesDeleted.WithLabelValues(handler).Inc()
}

func (r *Recorder) JobEnqueued() {
	if r == nil {
		return
	}
	r.jobsEnqueued.Inc()
}

func (r *Recorder) JobCompleted(outcome string) {
	if r == nil {
		return
	}
	r.jobsCompleted.WithLabelValues(outcome).Inc()
}
