package fraudcase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for case recording.
type Metrics struct {
	CasesOpened    *prometheus.CounterVec
	InsertFailures prometheus.Counter
}

// NewMetrics registers the fraud-case metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		CasesOpened: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attestguard_fraud_cases_opened_total",
			Help: "Total fraud cases opened, by priority score",
		}, []string{"priority"}),

		InsertFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attestguard_fraud_case_insert_failures_total",
			Help: "Total fraud case inserts that failed (verdict still returned)",
		}),
	}
}

// IncrementOpened records an opened case.
func (m *Metrics) IncrementOpened(priority string) {
	if m != nil {
		m.CasesOpened.WithLabelValues(priority).Inc()
	}
}

// IncrementInsertFailure records a failed case insert.
func (m *Metrics) IncrementInsertFailure() {
	if m != nil {
		m.InsertFailures.Inc()
	}
}
