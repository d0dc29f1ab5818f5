package metrics

import (
	"testing"

	"retailpricing/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func gatherFamilies(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	families, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]*dto.MetricFamily{}
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func counterWithLabels(f *dto.MetricFamily, role, outcome string) float64 {
	for _, m := range f.GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["role"] == role && labels["outcome"] == outcome {
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestPricingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPricingMetrics(reg)
	require.NoError(t, err)

	result := domain.PricingResult{AppliedMargin: decimal.RequireFromString("0.2590")}
	m.ObservePriced(domain.StrategicRoleAnchor, result, false)
	m.ObservePriced(domain.StrategicRoleAnchor, result, true)
	m.ObserveRejected("Impulse")
	m.ObserveRejected("clearance")

	families := gatherFamilies(t, reg)
	require.Len(t, families, 3)

	calculations := families["pricing_calculations_total"]
	require.NotNil(t, calculations)
	require.Equal(t, 2.0, counterWithLabels(calculations, "anchor", OutcomePriced))
	require.Equal(t, 1.0, counterWithLabels(calculations, "impulse", OutcomeRejected))
	require.Equal(t, 1.0, counterWithLabels(calculations, "unknown", OutcomeRejected))

	require.Equal(t, 1.0, families["pricing_safety_net_total"].GetMetric()[0].GetCounter().GetValue())

	histogram := families["pricing_applied_margin"].GetMetric()[0].GetHistogram()
	require.Equal(t, uint64(2), histogram.GetSampleCount())
	require.InDelta(t, 0.518, histogram.GetSampleSum(), 1e-9)

	t.Run("registering twice fails", func(t *testing.T) {
		_, err := NewPricingMetrics(reg)
		require.Error(t, err)
	})

	t.Run("nil metrics is a no-op", func(t *testing.T) {
		var nilMetrics *PricingMetrics
		require.NotPanics(t, func() {
			nilMetrics.ObservePriced(domain.StrategicRolePremium, result, true)
			nilMetrics.ObserveRejected("premium")
		})
	})
}
