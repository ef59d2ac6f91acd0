// Package topology infers which fronthaul cells share an Ethernet link from
// the correlation of their packet-loss signals.
//
// Cells behind the same congested link lose packets in the same slots, so
// their loss-fraction series rise and fall together, up to a few hundred
// milliseconds of reporting skew.  Inference runs in five steps:
//
//  1. Shift-tolerant similarity between every pair of cells (Pearson
//     correlation maximised over a sampled set of shifts within ±MaxShift,
//     clamped to [0,1]; optionally a banded DTW score).
//  2. Clustering on 1 − similarity with a swappable cluster.Clusterer
//     (average linkage by default) cut to exactly NumLinks groups.
//  3. Anchor relabeling: known (cell → link) facts name the clusters.
//  4. Per-link confidence on a 0–100 scale.
//  5. Outlier flags for singleton links that correlate with nothing.
//
// Everything is a pure function of the LossSignals and Options; identical
// inputs give bit-identical results even though pairs are evaluated
// concurrently.
package topology
