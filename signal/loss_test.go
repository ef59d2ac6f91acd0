package signal_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/fronthaul/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slots builds n slot records starting at t0 spaced by 0.5 ms; lossy(i) decides loss.
func slots(t0 float64, n int, lossy func(i int) bool) []signal.SlotRecord {
	out := make([]signal.SlotRecord, n)
	for i := range out {
		r := signal.SlotRecord{Timestamp: t0 + float64(i)*0.0005, Tx: 10, Rx: 10}
		if lossy(i) {
			r.Rx = 8
		}
		out[i] = r
	}

	return out
}

// TestSlotRecord_HasLoss checks the tx - rx + late > 0 rule.
func TestSlotRecord_HasLoss(t *testing.T) {
	assert.False(t, signal.SlotRecord{Tx: 5, Rx: 5}.HasLoss())
	assert.True(t, signal.SlotRecord{Tx: 5, Rx: 4}.HasLoss())
	assert.True(t, signal.SlotRecord{Tx: 5, Rx: 5, LateRx: 1}.HasLoss(), "late packets count as lost")
	assert.False(t, signal.SlotRecord{Tx: 5, Rx: 6}.HasLoss(), "duplicate rx does not register loss")
}

// TestBuildLossSignals_SharedGrid verifies that all cells share origin and length.
func TestBuildLossSignals_SharedGrid(t *testing.T) {
	stats := map[int][]signal.SlotRecord{
		1: slots(10.0, 800, func(int) bool { return false }),
		2: slots(10.3, 800, func(int) bool { return false }),
		3: nil,
	}
	ls, err := signal.BuildLossSignals(stats, signal.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, ls.Cells)
	assert.Equal(t, 10.0, ls.Grid.Origin)
	assert.Equal(t, 0.2, ls.Grid.Width)
	// last timestamp 10.3 + 799*0.0005 = 10.6995 -> int(0.6995/0.2)+1 = 4
	assert.Equal(t, 4, ls.Grid.Buckets)
	for _, cid := range ls.Cells {
		assert.Len(t, ls.Series[cid], ls.Grid.Buckets, "cell %d", cid)
	}
	assert.Equal(t, make([]float64, 4), ls.Series[3], "empty cell is all zeros")
}

// TestBuildLossSignals_Fraction checks the per-bucket mean of the loss indicator.
func TestBuildLossSignals_Fraction(t *testing.T) {
	// 400 slots per 200 ms bucket; every 4th slot lossy in the first bucket only.
	rec := slots(0, 800, func(i int) bool { return i < 400 && i%4 == 0 })
	ls, err := signal.BuildLossSignals(map[int][]signal.SlotRecord{5: rec}, signal.DefaultOptions())
	require.NoError(t, err)

	s := ls.Series[5]
	require.Len(t, s, 2)
	assert.InDelta(t, 0.25, s[0], 0.005)
	assert.Equal(t, 0.0, s[1])
	for _, v := range s {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

// TestBuildLossSignals_EmptyBucketsDefaultZero leaves gaps at zero.
func TestBuildLossSignals_EmptyBucketsDefaultZero(t *testing.T) {
	rec := []signal.SlotRecord{
		{Timestamp: 0, Tx: 1},
		{Timestamp: 1.0, Tx: 1},
	}
	ls, err := signal.BuildLossSignals(map[int][]signal.SlotRecord{1: rec}, signal.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 1}, ls.Series[1])
}

// TestBuildLossSignals_Errors covers the contract violations.
func TestBuildLossSignals_Errors(t *testing.T) {
	_, err := signal.BuildLossSignals(nil, signal.DefaultOptions())
	assert.ErrorIs(t, err, signal.ErrNoCells)

	_, err = signal.BuildLossSignals(map[int][]signal.SlotRecord{1: {}}, signal.DefaultOptions())
	assert.ErrorIs(t, err, signal.ErrNoRecords)

	_, err = signal.BuildLossSignals(map[int][]signal.SlotRecord{1: {{Timestamp: 1}}}, signal.Options{BucketWidth: 0})
	assert.ErrorIs(t, err, signal.ErrBadWidth)

	_, err = signal.BuildLossSignals(map[int][]signal.SlotRecord{1: {{Timestamp: math.NaN()}}}, signal.DefaultOptions())
	assert.ErrorIs(t, err, signal.ErrNonFinite)

	_, err = signal.BuildLossSignals(map[int][]signal.SlotRecord{1: {{Timestamp: 1, Tx: -1}}}, signal.DefaultOptions())
	assert.ErrorIs(t, err, signal.ErrNegativeCount)
}

// TestBuildLossSignals_SpanLimit rejects a stray far-future timestamp instead
// of allocating a bucket per 200 ms up to it.
func TestBuildLossSignals_SpanLimit(t *testing.T) {
	stray := map[int][]signal.SlotRecord{
		1: {{Timestamp: 0, Tx: 1, Rx: 1}},
		2: {{Timestamp: 1e18, Tx: 1, Rx: 1}},
	}
	_, err := signal.BuildLossSignals(stray, signal.DefaultOptions())
	assert.ErrorIs(t, err, signal.ErrSpanTooLarge)

	small := map[int][]signal.SlotRecord{1: slots(0, 20, func(int) bool { return false })}
	opts := signal.Options{BucketWidth: 0.001, MaxBuckets: 5}
	_, err = signal.BuildLossSignals(small, opts)
	assert.ErrorIs(t, err, signal.ErrSpanTooLarge)

	opts.MaxBuckets = 0
	ls, err := signal.BuildLossSignals(small, opts)
	require.NoError(t, err)
	assert.Greater(t, ls.Grid.Buckets, 5)
}

// TestBuildLossSignals_DoesNotMutate makes sure inputs are left untouched.
func TestBuildLossSignals_DoesNotMutate(t *testing.T) {
	rec := slots(0, 10, func(i int) bool { return i == 3 })
	before := append([]signal.SlotRecord(nil), rec...)
	_, err := signal.BuildLossSignals(map[int][]signal.SlotRecord{1: rec}, signal.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, before, rec)
}
