package dtw_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/fronthaul/dtw"
)

// lossLike returns n bucket values shaped like a periodic congestion signal.
func lossLike(n, phase int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Max(0, math.Sin(float64(i+phase)/7))
	}

	return out
}

// BenchmarkSimilarity benchmarks the normalized score on 300 buckets with a
// ±7 band and with no band.
func BenchmarkSimilarity(b *testing.B) {
	x, y := lossLike(300, 0), lossLike(300, 3)
	for _, w := range []int{7, dtw.Unlimited} {
		b.Run(fmt.Sprintf("window=%d", w), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := dtw.Similarity(x, y, w); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
