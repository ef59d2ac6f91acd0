// Package capacity sizes shared fronthaul links so that every cell on a link
// sees at most MaxLossPct percent of its own traffic slots lost.
//
// 🚀 Two models:
//
//   - WithoutBuffer: for each cell, the (100 − MaxLossPct)-th percentile of the
//     aggregate link demand over the slots in which that cell transmits; the
//     link needs the largest of these.
//   - WithBuffer: a single leaky bucket of BufferDuration × C bits absorbs
//     bursts above the candidate rate C. SimulateLoss replays the slot series
//     once for a given C; WithBuffer bisects C over [0, 1.1 × max demand].
//
// The bound is enforced per cell, never only on the link aggregate, so a
// bursty cell cannot hide behind well-behaved neighbours.
//
// ⚙️ Usage:
//
//	est, err := capacity.EstimateLinks(series, capacity.DefaultParams())
//	savings := capacity.Reduction(est) // link -> % saved by buffering
//
// Complexity: WithoutBuffer O(C · n log n); WithBuffer O(Iterations · n · C)
// for n slots and C cells.
package capacity
