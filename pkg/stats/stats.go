// Package stats turns price samples into summary statistics.
package stats

import (
	"math"
	"sort"

	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
)

// Summary holds the aggregate statistics of a price sample
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// Compute calculates min, max, mean, and median over a non-empty sample.
// Calling it with an empty sample is a programming error: callers must
// check non-emptiness first. Returning zeros instead would be
// indistinguishable from a genuinely free procedure.
func Compute(prices []float64) (Summary, error) {
	if len(prices) == 0 {
		return Summary{}, apperrors.NewInternalError("statistics requested for empty sample", nil)
	}

	min := prices[0]
	max := prices[0]
	sum := 0.0
	for _, p := range prices {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
		sum += p
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	return Summary{
		Min:    Round2(min),
		Max:    Round2(max),
		Avg:    Round2(sum / float64(len(prices))),
		Median: Round2(median),
		Count:  len(prices),
	}, nil
}

// Mean returns the arithmetic mean of a sample rounded to 2 decimal
// places, or 0 for an empty sample
func Mean(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	return Round2(sum / float64(len(prices)))
}

// Round2 rounds a value to 2 decimal places
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
