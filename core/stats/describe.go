// core/stats/describe.go
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Describe returns the mean / median / population-stdev triple for values.
// ok is false for an empty slice (all three values are then undefined);
// the stdev of a single value is 0, not undefined.
func Describe(values []float64) (mean, median, stdev float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, 0, false
	}
	mean = stat.Mean(values, nil)
	median = Median(values)
	if len(values) > 1 {
		stdev = stat.PopStdDev(values, nil)
	}
	return mean, median, stdev, true
}

// Mean is a thin wrapper kept so callers outside this package do not import
// gonum directly.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// Median averages the two middle order statistics for even n.
func Median(values []float64) float64 {
	m, _ := Quantile(values, 0.5)
	return m
}

// Quantile interpolates linearly between order statistics: the rank is
// (n-1)*q and the result is blended between the floor and ceiling ranks.
// gonum's CumulantKinds interpolate the empirical CDF instead, which is not
// what the identity-bin outputs use.
func Quantile(values []float64, q float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	ordered := append([]float64(nil), values...)
	sort.Float64s(ordered)
	if q <= 0 {
		return ordered[0], true
	}
	if q >= 1 {
		return ordered[len(ordered)-1], true
	}
	idx := float64(len(ordered)-1) * q
	lower := int(idx)
	upper := lower + 1
	if upper > len(ordered)-1 {
		upper = len(ordered) - 1
	}
	w := idx - float64(lower)
	return ordered[lower]*(1-w) + ordered[upper]*w, true
}
