package signal

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Scrub thresholds: a sample is a glitch when it exceeds
// max(glitchP99Factor × p99, glitchMedianFactor × median).
const (
	glitchP99Factor    = 2.0
	glitchMedianFactor = 10.0
)

// ScrubThroughput returns a timestamp-sorted copy of samples in which single-sample
// measurement glitches are zeroed. A sample is a glitch when its kilobit value is
// above max(2×p99, 10×median) of the cell's own samples; when p99 is 0 nothing is
// scrubbed. The second return value is the number of zeroed samples.
//
// Quantiles follow gonum's stat.LinInterp definition.
func ScrubThroughput(samples []ThroughputSample) ([]ThroughputSample, int, error) {
	out := make([]ThroughputSample, len(samples))
	copy(out, samples)
	if len(out) == 0 {
		return out, 0, nil
	}
	for i, s := range out {
		if math.IsNaN(s.Timestamp) || math.IsInf(s.Timestamp, 0) ||
			math.IsNaN(s.Kilobits) || math.IsInf(s.Kilobits, 0) {
			return nil, 0, fmt.Errorf("sample %d: %w", i, ErrNonFinite)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })

	values := make([]float64, len(out))
	for i, s := range out {
		values[i] = s.Kilobits
	}
	sort.Float64s(values)
	p99 := stat.Quantile(0.99, stat.LinInterp, values, nil)
	if p99 <= 0 {
		return out, 0, nil
	}
	median := stat.Quantile(0.5, stat.LinInterp, values, nil)
	threshold := math.Max(glitchP99Factor*p99, glitchMedianFactor*median)

	scrubbed := 0
	for i := range out {
		if out[i].Kilobits > threshold {
			out[i].Kilobits = 0
			scrubbed++
		}
	}

	return out, scrubbed, nil
}
