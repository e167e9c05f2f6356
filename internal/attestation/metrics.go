package attestation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision engine.
type Metrics struct {
	Verdicts        *prometheus.CounterVec
	MatchOutcomes   *prometheus.CounterVec
	EvaluateSeconds prometheus.Histogram
}

// NewMetrics registers the engine metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attestguard_verdicts_total",
			Help: "Total verdicts, by outcome",
		}, []string{"outcome"}),

		MatchOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attestguard_doctor_match_total",
			Help: "Total doctor match resolutions, by match status",
		}, []string{"status"}),

		EvaluateSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attestguard_evaluate_duration_seconds",
			Help:    "Time spent evaluating one attestation record",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementVerdict records a verdict outcome.
func (m *Metrics) IncrementVerdict(v *Verdict) {
	if m == nil {
		return
	}
	outcome := "approved"
	switch {
	case v.Fraud:
		outcome = "rejected_fraud"
	case !v.Valid:
		outcome = "rejected"
	}
	m.Verdicts.WithLabelValues(outcome).Inc()
}

// IncrementMatch records a match resolution.
func (m *Metrics) IncrementMatch(status MatchStatus) {
	if m != nil {
		m.MatchOutcomes.WithLabelValues(string(status)).Inc()
	}
}

// ObserveEvaluate records the duration of one evaluation.
func (m *Metrics) ObserveEvaluate(d time.Duration) {
	if m != nil {
		m.EvaluateSeconds.Observe(d.Seconds())
	}
}
