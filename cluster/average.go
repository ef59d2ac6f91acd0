package cluster

import (
	"math"

	"github.com/katalvlaran/fronthaul/matrix"
)

// AverageLinkage is agglomerative hierarchical clustering with UPGMA linkage:
// the distance between two clusters is the mean of all pairwise point
// distances between them.
type AverageLinkage struct{}

// Cluster merges the closest pair of active clusters until k remain.
//
// Steps:
//  1. Validate k >= 1 and a square, finite distance matrix.
//  2. Start with n singleton clusters; D[a][b] = dist[a][b] for a < b.
//  3. Repeatedly find the active pair with the smallest D (lowest (a,b) on ties),
//     merge b into a and update D[a][c] = (|a|·D[a][c] + |b|·D[b][c]) / (|a|+|b|).
//  4. Stop once k clusters remain (or immediately if n <= k).
//
// Complexity: O(n³) time, O(n²) memory; n is the number of cells (tens).
func (AverageLinkage) Cluster(dist *matrix.Dense, k int) ([]int, error) {
	if err := validate(dist, k); err != nil {
		return nil, err
	}
	n := dist.Rows()
	raw := dist.Raw()

	// Working copy: only the upper triangle (a < b) is read.
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		copy(d[i], raw[i])
	}
	size := make([]int, n)
	active := make([]bool, n)
	rep := make([]int, n) // point -> cluster representative
	for i := range size {
		size[i], active[i], rep[i] = 1, true, i
	}

	pair := func(a, b int) float64 {
		if a > b {
			a, b = b, a
		}

		return d[a][b]
	}

	for remaining := n; remaining > k; remaining-- {
		bestA, bestB, best := -1, -1, math.Inf(1)
		for a := 0; a < n; a++ {
			if !active[a] {
				continue
			}
			for b := a + 1; b < n; b++ {
				if active[b] && d[a][b] < best {
					bestA, bestB, best = a, b, d[a][b]
				}
			}
		}

		// Merge bestB into bestA.
		sa, sb := float64(size[bestA]), float64(size[bestB])
		for c := 0; c < n; c++ {
			if !active[c] || c == bestA || c == bestB {
				continue
			}
			v := (sa*pair(bestA, c) + sb*pair(bestB, c)) / (sa + sb)
			if bestA < c {
				d[bestA][c] = v
			} else {
				d[c][bestA] = v
			}
		}
		size[bestA] += size[bestB]
		active[bestB] = false
		for i := range rep {
			if rep[i] == bestB {
				rep[i] = bestA
			}
		}
	}

	return canonical(rep), nil
}
