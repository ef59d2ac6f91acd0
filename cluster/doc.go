// Package cluster partitions points described by a distance matrix into a
// fixed number of groups.
//
// 🚀 What's inside?
//
//   - Clusterer — the swappable interface: Cluster(dist, k) -> labels.
//   - AverageLinkage — agglomerative UPGMA; the default for topology inference.
//   - SingleLinkage — Kruskal's minimum spanning forest with a union–find,
//     stopped as soon as k components remain (equivalent to cutting the k−1
//     heaviest MST edges).
//
// ✨ Guarantees:
//   - Deterministic: ties are broken by the lowest (i, j) index pair, and
//     labels are numbered 0..k'−1 in order of first appearance by point index.
//   - Exactly min(k, n) clusters are returned.
//   - The distance matrix is never mutated.
//
// ⚙️ Usage:
//
//	labels, err := cluster.AverageLinkage{}.Cluster(dist, 3)
//	groups := cluster.Groups(labels) // [][]int of point indices
package cluster
