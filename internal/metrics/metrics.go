// Package metrics holds the Prometheus collectors for HTTP traffic and for
// the points economy. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "korima"

// Metrics groups every collector exported by the service.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	requestsCreated    *prometheus.CounterVec
	responsesSubmitted *prometheus.CounterVec
	decisions          *prometheus.CounterVec
	pointsMoved        *prometheus.CounterVec
	checkIns           prometheus.Counter
	providerCalls      *prometheus.CounterVec
	filesCleaned       *prometheus.CounterVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_inflight",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		requestsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_created_total",
			Help:      "Document requests created, by category.",
		}, []string{"category"}),
		responsesSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_submitted_total",
			Help:      "Responses submitted, by payload kind.",
		}, []string{"kind"}),
		decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Owner decisions on requests, by outcome.",
		}, []string{"outcome"}),
		pointsMoved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_moved_total",
			Help:      "Absolute points debited or credited, by ledger reason.",
		}, []string{"reason"}),
		checkIns: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_total",
			Help:      "Accepted daily check-ins.",
		}),
		providerCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Bibliographic provider calls, by provider and outcome.",
		}, []string{"provider", "outcome"}),
		filesCleaned: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_files_total",
			Help:      "Expired files processed by the cleanup sweep, by result.",
		}, []string{"result"}),
	}
}

// ObserveHTTP records one finished HTTP request. route must be the matched
// pattern, never the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

// InflightInc and InflightDec track concurrently served requests.
func (m *Metrics) InflightInc() {
	if m != nil {
		m.httpInflight.Inc()
	}
}

func (m *Metrics) InflightDec() {
	if m != nil {
		m.httpInflight.Dec()
	}
}

func (m *Metrics) RequestCreated(category string) {
	if m != nil {
		m.requestsCreated.WithLabelValues(category).Inc()
	}
}

func (m *Metrics) ResponseSubmitted(kind string) {
	if m != nil {
		m.responsesSubmitted.WithLabelValues(kind).Inc()
	}
}

// Decision counts a best-answer or incorrect outcome.
func (m *Metrics) Decision(outcome string) {
	if m != nil {
		m.decisions.WithLabelValues(outcome).Inc()
	}
}

// PointsMoved adds the absolute value of delta under reason.
func (m *Metrics) PointsMoved(reason string, delta int) {
	if m == nil {
		return
	}
	if delta < 0 {
		delta = -delta
	}
	m.pointsMoved.WithLabelValues(reason).Add(float64(delta))
}

func (m *Metrics) CheckIn() {
	if m != nil {
		m.checkIns.Inc()
	}
}

// ProviderCall counts a metadata lookup; outcome is ok, not_found, timeout
// or error.
func (m *Metrics) ProviderCall(provider, outcome string) {
	if m != nil {
		m.providerCalls.WithLabelValues(provider, outcome).Inc()
	}
}

func (m *Metrics) FilesCleaned(deleted, failed int) {
	if m == nil {
		return
	}
	m.filesCleaned.WithLabelValues("deleted").Add(float64(deleted))
	m.filesCleaned.WithLabelValues("failed").Add(float64(failed))
}
