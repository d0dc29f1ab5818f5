package calculator

import (
	"fmt"

	"retailpricing/internal/domain"

	"github.com/montanaflynn/stats"
)

// CalculateMarginSummary describes the realised margins of a priced batch.
// An empty batch yields a zero summary.
func CalculateMarginSummary(priced []domain.PricedProduct) (*domain.RepricingSummary, error) {
	if len(priced) == 0 {
		return &domain.RepricingSummary{}, nil
	}

	margins := make(stats.Float64Data, 0, len(priced))
	for _, p := range priced {
		margins = append(margins, p.AppliedMargin.InexactFloat64())
	}

	mean, err := margins.Mean()
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean margin: %w", err)
	}
	median, err := margins.Median()
	if err != nil {
		return nil, fmt.Errorf("failed to compute median margin: %w", err)
	}
	min, err := margins.Min()
	if err != nil {
		return nil, fmt.Errorf("failed to compute min margin: %w", err)
	}
	max, err := margins.Max()
	if err != nil {
		return nil, fmt.Errorf("failed to compute max margin: %w", err)
	}

	summary := domain.RepricingSummary{Count: len(priced)}
	for _, field := range []struct {
		value float64
		dest  *float64
	}{
		{mean, &summary.MeanMargin},
		{median, &summary.MedianMargin},
		{min, &summary.MinMargin},
		{max, &summary.MaxMargin},
	} {
		rounded, err := stats.Round(field.value, marginPlaces)
		if err != nil {
			return nil, fmt.Errorf("failed to round margin summary: %w", err)
		}
		*field.dest = rounded
	}

	return &summary, nil
}
