package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lp",
			Subsystem: "provision",
			Name:      "simulations_total",
			Help:      "Total number of simulation attempts",
		},
		[]string{"provision_type", "status"},
	)

	fallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lp",
			Subsystem: "provision",
			Name:      "existing_pool_fallbacks_total",
			Help:      "Total number of Initial attempts that fell back to Balanced",
		},
	)

	assembliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lp",
			Subsystem: "provision",
			Name:      "assemblies_total",
			Help:      "Total number of transaction assemblies",
		},
		[]string{"status"},
	)
)

// SimulationDone records one finished simulation attempt.
func SimulationDone(provisionType, status string) {
	simulationsTotal.WithLabelValues(provisionType, status).Inc()
}

// FallbackTaken records an Initial->Balanced fallback transition.
func FallbackTaken() {
	fallbacksTotal.Inc()
}

// AssemblyDone records one transaction assembly outcome.
func AssemblyDone(status string) {
	assembliesTotal.WithLabelValues(status).Inc()
}
