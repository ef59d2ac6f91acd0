package dtw_test

import (
	"testing"

	"github.com/katalvlaran/fronthaul/dtw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSimilarity_Bounds verifies identity, band limits and the [0,1] range.
func TestSimilarity_Bounds(t *testing.T) {
	burst := []float64{0, 0, 1, 1, 1, 0, 0, 0}
	shifted := []float64{0, 0, 0, 0, 1, 1, 1, 0}
	flat := make([]float64, len(burst))

	s, err := dtw.Similarity(burst, burst, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s)

	s, err = dtw.Similarity(burst, shifted, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s, "two-bucket shift inside a ±2 band is free")

	strict, err := dtw.Similarity(burst, shifted, 0)
	require.NoError(t, err)
	assert.Less(t, strict, 1.0)

	s, err = dtw.Similarity(burst, flat, 3)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s, 0.0)
	assert.Less(t, s, 1.0)

	zero, err := dtw.Similarity([]float64{1, 1, 1}, []float64{0, 0, 0, 0, 0}, 0)
	require.NoError(t, err)
	assert.Zero(t, zero, "unalignable pairs score 0")

	_, err = dtw.Similarity(nil, burst, 1)
	assert.ErrorIs(t, err, dtw.ErrEmptyInput)
	_, err = dtw.Similarity(burst, burst, -3)
	assert.ErrorIs(t, err, dtw.ErrBadInput)
}

// TestSimilarity_Symmetric holds for equal-length series.
func TestSimilarity_Symmetric(t *testing.T) {
	a := []float64{0.2, 0.0, 0.5, 0.9, 0.1, 0.0}
	b := []float64{0.0, 0.3, 0.4, 0.8, 0.8, 0.1}
	ab, err := dtw.Similarity(a, b, 2)
	require.NoError(t, err)
	ba, err := dtw.Similarity(b, a, 2)
	require.NoError(t, err)
	assert.InDelta(t, ab, ba, 1e-12)
}

// TestSimilarity_BandLimitsLag scores a lagged burst 1 while the lag fits in
// the band and below 1 once it does not.
func TestSimilarity_BandLimitsLag(t *testing.T) {
	burst := func(at int) []float64 {
		out := make([]float64, 20)
		for i := at; i < at+4; i++ {
			out[i] = 1
		}

		return out
	}
	base := burst(5)
	for lag := 0; lag <= 4; lag++ {
		s, err := dtw.Similarity(base, burst(5+lag), 2)
		require.NoError(t, err)
		if lag <= 2 {
			assert.Equal(t, 1.0, s, "lag %d", lag)
		} else {
			assert.Less(t, s, 1.0, "lag %d", lag)
		}
	}

	unlimited, err := dtw.Similarity(base, burst(9), dtw.Unlimited)
	require.NoError(t, err)
	wide, err := dtw.Similarity(base, burst(9), 19)
	require.NoError(t, err)
	assert.Equal(t, wide, unlimited)
	assert.Equal(t, 1.0, unlimited)
}
