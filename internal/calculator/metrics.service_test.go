package calculator

import (
	"testing"

	"retailpricing/internal/domain"

	"github.com/stretchr/testify/require"
)

func pricedWithMargin(margin string) domain.PricedProduct {
	return domain.PricedProduct{
		PricingResult: domain.PricingResult{AppliedMargin: d(margin)},
	}
}

func TestCalculateMarginSummary(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		summary, err := CalculateMarginSummary(nil)
		require.NoError(t, err)
		require.Equal(t, domain.RepricingSummary{}, *summary)
	})

	t.Run("odd count", func(t *testing.T) {
		summary, err := CalculateMarginSummary([]domain.PricedProduct{
			pricedWithMargin("0.10"),
			pricedWithMargin("0.40"),
			pricedWithMargin("0.25"),
		})
		require.NoError(t, err)

		require.Equal(t, 3, summary.Count)
		require.InDelta(t, 0.25, summary.MeanMargin, 1e-9)
		require.InDelta(t, 0.25, summary.MedianMargin, 1e-9)
		require.InDelta(t, 0.10, summary.MinMargin, 1e-9)
		require.InDelta(t, 0.40, summary.MaxMargin, 1e-9)
	})

	t.Run("even count uses midpoint median", func(t *testing.T) {
		summary, err := CalculateMarginSummary([]domain.PricedProduct{
			pricedWithMargin("0.1"),
			pricedWithMargin("0.2"),
			pricedWithMargin("0.3"),
			pricedWithMargin("0.5"),
		})
		require.NoError(t, err)

		require.InDelta(t, 0.275, summary.MeanMargin, 1e-9)
		require.InDelta(t, 0.25, summary.MedianMargin, 1e-9)
	})

	t.Run("every statistic is rounded to four places", func(t *testing.T) {
		summary, err := CalculateMarginSummary([]domain.PricedProduct{
			pricedWithMargin("0.123456"),
			pricedWithMargin("0.987656"),
		})
		require.NoError(t, err)

		require.InDelta(t, 0.1235, summary.MinMargin, 1e-9)
		require.InDelta(t, 0.9877, summary.MaxMargin, 1e-9)
		require.InDelta(t, 0.5556, summary.MeanMargin, 1e-9)
		require.InDelta(t, 0.5556, summary.MedianMargin, 1e-9)
	})
}
