package signal

import (
	"fmt"
	"math"
	"sort"
)

// BuildLossSignals converts per-cell slot records into loss-fraction series.
//
// Algorithm:
//  1. Validate options and every record (finite timestamp, non-negative counters).
//  2. Origin = global minimum timestamp, Buckets = int((max-min)/Width) + 1,
//     bounded by Options.MaxBuckets.
//  3. For each cell, bucket = int((ts-Origin)/Width); loss fraction of a bucket is
//     the mean of the binary HasLoss indicator over the slots that fall into it.
//  4. Buckets that received no slots stay at 0.
//
// Cells present in stats with no records still get an all-zero series so that
// every requested cell can be correlated and clustered.
//
// Errors: ErrNoCells, ErrNoRecords, ErrBadWidth, ErrNonFinite, ErrNegativeCount,
// ErrSpanTooLarge.
// Complexity: O(R + C·B).
func BuildLossSignals(stats map[int][]SlotRecord, opts Options) (*LossSignals, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, ErrNoCells
	}

	cells := sortedKeys(stats)

	// Pass 1: validate and find the global time range.
	tMin, tMax := math.Inf(1), math.Inf(-1)
	for _, cid := range cells {
		for i, r := range stats[cid] {
			if math.IsNaN(r.Timestamp) || math.IsInf(r.Timestamp, 0) {
				return nil, fmt.Errorf("cell %d record %d: %w", cid, i, ErrNonFinite)
			}
			if r.Tx < 0 || r.Rx < 0 || r.LateRx < 0 {
				return nil, fmt.Errorf("cell %d record %d: %w", cid, i, ErrNegativeCount)
			}
			tMin = math.Min(tMin, r.Timestamp)
			tMax = math.Max(tMax, r.Timestamp)
		}
	}
	if math.IsInf(tMin, 1) {
		return nil, ErrNoRecords
	}

	span := (tMax - tMin) / opts.BucketWidth
	if limit := opts.maxBuckets(); !(span < float64(limit)) {
		return nil, fmt.Errorf("%.0f s at %g s buckets, limit %d: %w", tMax-tMin, opts.BucketWidth, limit, ErrSpanTooLarge)
	}
	grid := Grid{
		Origin:  tMin,
		Width:   opts.BucketWidth,
		Buckets: int(span) + 1,
	}

	// Pass 2: per-cell bucket means.
	series := make(map[int][]float64, len(cells))
	lossy := make([]int, grid.Buckets)
	total := make([]int, grid.Buckets)
	for _, cid := range cells {
		for b := range total {
			lossy[b], total[b] = 0, 0
		}
		for _, r := range stats[cid] {
			b, ok := grid.Index(r.Timestamp)
			if !ok {
				continue
			}
			total[b]++
			if r.HasLoss() {
				lossy[b]++
			}
		}
		arr := make([]float64, grid.Buckets)
		for b := range arr {
			if total[b] > 0 {
				arr[b] = float64(lossy[b]) / float64(total[b])
			}
		}
		series[cid] = arr
	}

	return &LossSignals{Grid: grid, Cells: cells, Series: series}, nil
}

// sortedKeys returns the map keys in ascending order.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}
