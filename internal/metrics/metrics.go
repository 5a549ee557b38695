// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	// CommandsTotal counts processed commands by name and outcome
	// (accepted, rejected, error).
	CommandsTotal *prometheus.CounterVec

	// ReasonerFallbacks counts absorbed reasoning backend failures.
	ReasonerFallbacks prometheus.Counter

	// StoreErrors counts failed store operations surfaced to callers.
	StoreErrors prometheus.Counter
}

// New registers the collectors with the default registry.
func New() *Metrics {
	return &Metrics{
		CommandsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sereno_commands_total",
			Help: "Commands processed, by command name and outcome.",
		}, []string{"command", "outcome"}),
		ReasonerFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sereno_reasoner_fallbacks_total",
			Help: "Reasoning backend failures absorbed by the stub fallback.",
		}),
		StoreErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sereno_store_errors_total",
			Help: "Session store failures surfaced as transient errors.",
		}),
	}
}
