package repository

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeFailed  = "failed"
	outcomePushed  = "pushed"
	outcomeNoOp    = "noop"
)

type Metrics struct {
	initializations *prometheus.CounterVec
	transactions    *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		initializations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "release_manager",
			Subsystem: "repository",
			Name:      "initializations_total",
			Help:      "Working copy initializations by provider and outcome.",
		}, []string{"provider", "outcome"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "release_manager",
			Subsystem: "repository",
			Name:      "transactions_total",
			Help:      "Commit/push transactions by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}

	for _, c := range []prometheus.Collector{m.initializations, m.transactions} {
		if err := registerer.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register repository metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) initialized(kind Kind, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailed
	}
	m.initializations.WithLabelValues(string(kind), outcome).Inc()
}

func (m *Metrics) transaction(kind Kind, outcome string) {
	m.transactions.WithLabelValues(string(kind), outcome).Inc()
}
