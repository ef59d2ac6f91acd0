package signal_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/fronthaul/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScrubThroughput_ZeroesSpike removes a single 1000x glitch.
func TestScrubThroughput_ZeroesSpike(t *testing.T) {
	in := make([]signal.ThroughputSample, 1001)
	for i := range in {
		in[i] = signal.ThroughputSample{Timestamp: float64(i), Kilobits: 1}
	}
	in[500].Kilobits = 1000

	out, n, err := signal.ScrubThroughput(in)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0.0, out[500].Kilobits)
	assert.Equal(t, 1000.0, in[500].Kilobits, "input must not be mutated")
}

// TestScrubThroughput_KeepsRealTraffic leaves a plausible distribution alone.
func TestScrubThroughput_KeepsRealTraffic(t *testing.T) {
	in := make([]signal.ThroughputSample, 200)
	for i := range in {
		in[i] = signal.ThroughputSample{Timestamp: float64(i), Kilobits: float64(i%10 + 1)}
	}
	out, n, err := signal.ScrubThroughput(in)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, in, out)
}

// TestScrubThroughput_SortsAndHandlesZeroP99 covers sorting and the p99 == 0 guard.
func TestScrubThroughput_SortsAndHandlesZeroP99(t *testing.T) {
	in := []signal.ThroughputSample{{Timestamp: 3}, {Timestamp: 1}, {Timestamp: 2}}
	out, n, err := signal.ScrubThroughput(in)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []float64{1, 2, 3}, []float64{out[0].Timestamp, out[1].Timestamp, out[2].Timestamp})

	empty, n, err := signal.ScrubThroughput(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, empty)
}

// TestScrubThroughput_NonFinite rejects NaN/Inf samples.
func TestScrubThroughput_NonFinite(t *testing.T) {
	_, _, err := signal.ScrubThroughput([]signal.ThroughputSample{{Timestamp: 0, Kilobits: math.Inf(1)}})
	assert.ErrorIs(t, err, signal.ErrNonFinite)
}
