package metrics

import (
	"retailpricing/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomePriced   = "priced"
	OutcomeRejected = "rejected"
)

// PricingMetrics counts engine calls. A nil *PricingMetrics is valid and
// records nothing.
type PricingMetrics struct {
	calculations *prometheus.CounterVec
	safetyNet    prometheus.Counter
	margins      prometheus.Histogram
}

func NewPricingMetrics(reg prometheus.Registerer) (*PricingMetrics, error) {
	m := &PricingMetrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Name:      "calculations_total",
			Help:      "Price calculations by strategic role and outcome.",
		}, []string{"role", "outcome"}),
		safetyNet: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Name:      "safety_net_total",
			Help:      "Prices that fell back to cost plus the safety markup.",
		}),
		margins: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Name:      "applied_margin",
			Help:      "Realised margin after psychological rounding.",
			Buckets:   []float64{0.08, 0.10, 0.15, 0.20, 0.25, 0.30, 0.40, 0.60, 1.0},
		}),
	}

	for _, c := range []prometheus.Collector{m.calculations, m.safetyNet, m.margins} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PricingMetrics) ObservePriced(role domain.StrategicRole, result domain.PricingResult, safetyNetApplied bool) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(string(role), OutcomePriced).Inc()
	m.margins.Observe(result.AppliedMargin.InexactFloat64())
	if safetyNetApplied {
		m.safetyNet.Inc()
	}
}

// ObserveRejected takes the raw role since rejected input may not parse.
// Unknown roles share one label to keep cardinality bounded.
func (m *PricingMetrics) ObserveRejected(role string) {
	if m == nil {
		return
	}
	label := "unknown"
	if r, err := domain.ParseStrategicRole(role); err == nil {
		label = string(r)
	}
	m.calculations.WithLabelValues(label, OutcomeRejected).Inc()
}
