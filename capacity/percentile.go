package capacity

import (
	"math"
	"sort"
)

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between closest ranks: position p/100·(n−1) in the sorted
// values. It returns NaN for an empty input. values is not modified.
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	v := append([]float64(nil), values...)
	sort.Float64s(v)
	if n == 1 {
		return v[0]
	}

	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	if lo < 0 {
		return v[0]
	}
	if lo >= n-1 {
		return v[n-1]
	}
	t := pos - float64(lo)
	a, b := v[lo], v[lo+1]
	// Interpolate from the nearer end so both endpoints are reproduced exactly.
	if t >= 0.5 {
		return b - (b-a)*(1-t)
	}

	return a + (b-a)*t
}
