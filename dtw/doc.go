// Package dtw scores the similarity of two numeric time series with banded
// Dynamic Time Warping (DTW).
//
// 🚀 What is DTW?
//
//	DTW finds the best match between two sequences by warping the time
//	axis to minimize cumulative distance.  In the fronthaul engine it is the
//	alternative similarity measure for loss-fraction series: two cells behind
//	the same congested link show the same bursts, but skewed reporting clocks
//	may smear or shift them by a few buckets.
//
// ✨ Key features:
//   - Sakoe–Chiba window (|i−j| ≤ w) bounding the tolerated skew
//   - length-normalized score in [0,1] for series in [0,1]
//   - O(M) memory: two rolling rows of costs and path lengths
//
// ⚙️ Usage:
//
//	sim, err := dtw.Similarity(lossA, lossB, 7) // ±7 buckets
//
// Performance:
//
//   - Time:   O(N·M), or O(N·w) cells inside the band
//   - Memory: O(M)
package dtw
