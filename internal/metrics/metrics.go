package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	MembershipOperationsTotal *prometheus.CounterVec
	AuthorizationDecisions    *prometheus.CounterVec
	RoleListWritesTotal       *prometheus.CounterVec
	RoleDriftUsers            prometheus.Gauge
}

// NewMetricsRegistry registers every metric on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction never collides.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abrigo_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "abrigo_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "abrigo_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abrigo_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abrigo_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		MembershipOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abrigo_membership_operations_total",
				Help: "Membership lifecycle operations by role, operation and outcome",
			},
			[]string{"role", "operation", "outcome"},
		),
		AuthorizationDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abrigo_authorization_decisions_total",
				Help: "Authorization gate decisions by outcome",
			},
			[]string{"outcome"},
		),
		RoleListWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abrigo_role_list_writes_total",
				Help: "Writes to users.roles by role and change (append, remove, rebuild)",
			},
			[]string{"role", "change"},
		),
		RoleDriftUsers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "abrigo_role_drift_users",
				Help: "Active users whose role list disagrees with their membership rows, as of the last audit",
			},
		),
	}
}

// ObserveMembership is nil-safe so services can run without metrics in tests.
func (m *MetricsRegistry) ObserveMembership(role, operation, outcome string) {
	if m == nil {
		return
	}
	m.MembershipOperationsTotal.WithLabelValues(role, operation, outcome).Inc()
}

func (m *MetricsRegistry) ObserveDecision(outcome string) {
	if m == nil {
		return
	}
	m.AuthorizationDecisions.WithLabelValues(outcome).Inc()
}

func (m *MetricsRegistry) ObserveRoleListWrite(role, change string) {
	if m == nil {
		return
	}
	m.RoleListWritesTotal.WithLabelValues(role, change).Inc()
}

func (m *MetricsRegistry) ObserveCache(pattern string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

func (m *MetricsRegistry) SetRoleDrift(users int) {
	if m == nil {
		return
	}
	m.RoleDriftUsers.Set(float64(users))
}
