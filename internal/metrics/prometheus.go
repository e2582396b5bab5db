package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "enquiry_relay"

// PrometheusRecorder exports metrics through a Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	submissions   *prometheus.CounterVec
	rateLimited   prometheus.Counter
	storeErrors   *prometheus.CounterVec
	mail          *prometheus.CounterVec
	externalCalls *prometheus.HistogramVec
}

// NewPrometheus registers the application collectors on a fresh registry.
// The Go runtime and process collectors are registered alongside them.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()

	p := &PrometheusRecorder{
		registry: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-IP rate limiter",
		}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Submission store failures by operation",
		}, []string{"op"}),
		mail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Emails by kind and delivery status",
		}, []string{"kind", "status"}),
		externalCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_call_duration_seconds",
			Help:      "Time taken by store and mail calls",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		}, []string{"op"}),
	}

	reg.MustRegister(
		p.submissions,
		p.rateLimited,
		p.storeErrors,
		p.mail,
		p.externalCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return p
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

// IncSubmission increments the counter for a submission outcome.
func (p *PrometheusRecorder) IncSubmission(outcome string) {
	p.submissions.WithLabelValues(outcome).Inc()
}

// IncRateLimited increments the rejected request counter.
func (p *PrometheusRecorder) IncRateLimited() {
	p.rateLimited.Inc()
}

// IncStoreError increments the store failure counter for op.
func (p *PrometheusRecorder) IncStoreError(op string) {
	p.storeErrors.WithLabelValues(op).Inc()
}

// IncMail increments the mail counter for kind and status.
func (p *PrometheusRecorder) IncMail(kind, status string) {
	p.mail.WithLabelValues(kind, status).Inc()
}

// ObserveExternalCall records the duration of a store or mail call.
func (p *PrometheusRecorder) ObserveExternalCall(op string, d time.Duration) {
	p.externalCalls.WithLabelValues(op).Observe(d.Seconds())
}
