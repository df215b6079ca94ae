package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsRegistry_IsolatedRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetricsRegistry(prometheus.NewRegistry())
		NewMetricsRegistry(prometheus.NewRegistry())
	})
}

func TestObserveMembership(t *testing.T) {
	m := NewMetricsRegistry(prometheus.NewRegistry())

	m.ObserveMembership("Funcionario", "grant", "success")
	m.ObserveMembership("Funcionario", "grant", "success")
	m.ObserveMembership("Funcionario", "grant", "forbidden")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MembershipOperationsTotal.WithLabelValues("Funcionario", "grant", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MembershipOperationsTotal.WithLabelValues("Funcionario", "grant", "forbidden")))
}

func TestObserveCache(t *testing.T) {
	m := NewMetricsRegistry(prometheus.NewRegistry())

	m.ObserveCache("PROJECT_", true)
	m.ObserveCache("PROJECT_", false)
	m.ObserveCache("PROJECT_", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("PROJECT_")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("PROJECT_")))
}

func TestNilRegistryIsSafe(t *testing.T) {
	var m *MetricsRegistry
	assert.NotPanics(t, func() {
		m.ObserveMembership("Doador", "revoke", "success")
		m.ObserveDecision("allow")
		m.ObserveRoleListWrite("Doador", "append")
		m.ObserveCache("PROJECT_", true)
	})
}
