package metrics

import "github.com/prometheus/client_golang/prometheus"

// ResolutionMetrics counts selection resolution outcomes per availability policy.
type ResolutionMetrics struct {
	outcomes *prometheus.CounterVec
}

// NewResolutionMetrics registers resolution counters on the provided registerer.
func NewResolutionMetrics(reg prometheus.Registerer) *ResolutionMetrics {
	if reg == nil {
		return &ResolutionMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "selection_resolutions_total",
		Help: "Selection resolution outcomes by terminal state and policy.",
	}, []string{"state", "policy"})
	reg.MustRegister(outcomes)
	return &ResolutionMetrics{outcomes: outcomes}
}

// IncOutcome increments the counter for the given terminal state and policy.
func (m *ResolutionMetrics) IncOutcome(state, policy string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(state), normalizeLabel(policy)).Inc()
}
