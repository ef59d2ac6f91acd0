package topology_test

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/fronthaul/signal"
)

const buckets = 400

// lossSignals wraps raw series into LossSignals on a 200 ms grid.
func lossSignals(series map[int][]float64) *signal.LossSignals {
	cells := make([]int, 0, len(series))
	n := 0
	for c, s := range series {
		cells = append(cells, c)
		n = len(s)
	}
	sort.Ints(cells)

	return &signal.LossSignals{
		Grid:   signal.Grid{Origin: 0, Width: 0.2, Buckets: n},
		Cells:  cells,
		Series: series,
	}
}

// burst returns a series with value 1 in [from, to] and 0 elsewhere.
func burst(from, to int) []float64 {
	s := make([]float64, buckets)
	for i := from; i <= to; i++ {
		s[i] = 1
	}

	return s
}

// noisy returns independent uniform loss everywhere except [from, to].
func noisy(seed int64, from, to int) []float64 {
	r := rand.New(rand.NewSource(seed))
	s := make([]float64, buckets)
	for i := range s {
		if i >= from && i <= to {
			continue
		}
		s[i] = r.Float64()
	}

	return s
}

// groupSignal is a shared congestion pattern with optional small per-cell jitter.
func groupSignal(seed int64, jitterSeed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	j := rand.New(rand.NewSource(jitterSeed))
	s := make([]float64, buckets)
	for i := range s {
		if r.Float64() < 0.15 {
			s[i] = 0.5 + 0.5*r.Float64()
		}
		s[i] += 0.02 * j.Float64()
		if s[i] > 1 {
			s[i] = 1
		}
	}

	return s
}

// threeGroups builds cells 1..9 in three congestion groups:
// {1,4,7}, {2,5,8}, {3,6,9}.
func threeGroups() *signal.LossSignals {
	series := make(map[int][]float64, 9)
	for c := 1; c <= 9; c++ {
		g := int64((c - 1) % 3)
		series[c] = groupSignal(100+g, int64(c))
	}

	return lossSignals(series)
}
