package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP and domain metrics of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	Signups            prometheus.Counter
	Logins             *prometheus.CounterVec
	RecordsCreated     *prometheus.CounterVec
	RecordsDeleted     *prometheus.CounterVec
	UserCascadeDeletes prometheus.Counter
	RevocationChecks   prometheus.Histogram
}

// New creates a Metrics instance registered with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campusnet_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campusnet_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Signups: factory.NewCounter(prometheus.CounterOpts{
			Name: "campusnet_signups_total",
			Help: "Total number of accounts created",
		}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campusnet_logins_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),
		RecordsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campusnet_records_created_total",
			Help: "Total number of profile records created by kind",
		}, []string{"kind"}),
		RecordsDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campusnet_records_deleted_total",
			Help: "Total number of profile records deleted by kind",
		}, []string{"kind"}),
		UserCascadeDeletes: factory.NewCounter(prometheus.CounterOpts{
			Name: "campusnet_user_cascade_deletes_total",
			Help: "Total number of users deleted together with their records",
		}),
		RevocationChecks: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusnet_token_revocation_check_duration_seconds",
			Help:    "Latency of token revocation checks",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
	}
}

// ObserveHTTP records a finished request
func (m *Metrics) ObserveHTTP(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// IncSignup records a successful signup
func (m *Metrics) IncSignup() {
	if m == nil {
		return
	}
	m.Signups.Inc()
}

// IncLogin records a login attempt; result is "success" or "failure"
func (m *Metrics) IncLogin(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

// IncCreated records a created record of kind
func (m *Metrics) IncCreated(kind string) {
	if m == nil {
		return
	}
	m.RecordsCreated.WithLabelValues(kind).Inc()
}

// IncDeleted records a deleted record of kind
func (m *Metrics) IncDeleted(kind string) {
	if m == nil {
		return
	}
	m.RecordsDeleted.WithLabelValues(kind).Inc()
}

// IncCascadeDelete records a user deleted with all owned records
func (m *Metrics) IncCascadeDelete() {
	if m == nil {
		return
	}
	m.UserCascadeDeletes.Inc()
}

// ObserveRevocationCheck records the latency of a revocation lookup
func (m *Metrics) ObserveRevocationCheck(start time.Time) {
	if m == nil {
		return
	}
	m.RevocationChecks.Observe(time.Since(start).Seconds())
}
