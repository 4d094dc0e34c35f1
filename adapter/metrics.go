package adapter

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nmxmxh/inos_effects/budget"
)

// Metrics instruments the engine. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Publications     *prometheus.CounterVec
	ListenerFailures *prometheus.CounterVec
	Tier             prometheus.Gauge
	ParticleBudget   prometheus.Gauge
}

// NewMetrics creates and registers the engine metrics on reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Publications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "effects",
			Name:      "budget_publications_total",
			Help:      "Budgets published, by tier and triggering cause.",
		}, []string{"tier", "cause"}),
		ListenerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "effects",
			Name:      "listener_failures_total",
			Help:      "Recovered failures of environment-change handling, by event.",
		}, []string{"event"}),
		Tier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "effects",
			Name:      "tier",
			Help:      "Current performance tier (0=low, 1=medium, 2=high).",
		}),
		ParticleBudget: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "effects",
			Name:      "particle_budget",
			Help:      "Current particle count budget.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Publications, m.ListenerFailures, m.Tier, m.ParticleBudget} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(b budget.EffectsBudget, cause string) {
	if m == nil {
		return
	}
	m.Publications.WithLabelValues(b.Tier.String(), cause).Inc()
	m.Tier.Set(float64(b.Tier))
	m.ParticleBudget.Set(float64(b.ParticleCount))
}

func (m *Metrics) listenerFailed(event string) {
	if m == nil {
		return
	}
	m.ListenerFailures.WithLabelValues(event).Inc()
}
