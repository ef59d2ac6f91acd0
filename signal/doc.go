// Package signal turns raw per-cell fronthaul counters into uniform,
// time-aligned numeric series that the rest of the engine can index directly.
//
// 🚀 What does it build?
//
//   - Loss-fraction series: for every cell, a fixed-stride bucketed series where
//     bucket t holds the fraction of slots that observed packet loss.  All cells
//     share one Grid (origin + width + bucket count), so index t means the same
//     wall-clock window for every cell.
//   - Scrubbed throughput: symbol-level bit counts with single-sample sensor
//     glitches zeroed before any aggregation.
//
// ✨ Key guarantees:
//   - Pure functions: inputs are never mutated, results are fresh slices.
//   - Deterministic: cell ids are always processed in ascending order.
//   - Contract violations (NaN/Inf timestamps, negative counters) are returned
//     as errors, never coerced.
//
// ⚙️ Usage:
//
//	ls, err := signal.BuildLossSignals(stats, signal.DefaultOptions())
//	if err != nil {
//	  // handle ErrNoCells, ErrNoRecords, ErrNonFinite ...
//	}
//	series := ls.Series[7] // len(series) == ls.Grid.Buckets
//
//	clean, scrubbed, err := signal.ScrubThroughput(samples)
//
// Complexity:
//
//   - BuildLossSignals: O(R + C·B) for R records, C cells and B buckets.
//   - ScrubThroughput:  O(n log n) (sort + quantiles).
package signal
