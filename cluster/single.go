package cluster

import (
	"sort"

	"github.com/katalvlaran/fronthaul/matrix"
)

// SingleLinkage clusters by building Kruskal's minimum spanning forest over the
// complete distance graph and stopping when k components remain.
type SingleLinkage struct{}

type edge struct {
	u, v int
	w    float64
}

// Cluster runs Kruskal with a union–find (path compression, union by rank).
//
// Steps:
//  1. Collect all (i<j) edges and stable-sort them by weight, so equal weights
//     keep their (i, j) order.
//  2. Union endpoints in different components until k components remain.
//  3. Label points by their component root.
//
// Complexity: O(n² log n).
func (SingleLinkage) Cluster(dist *matrix.Dense, k int) ([]int, error) {
	if err := validate(dist, k); err != nil {
		return nil, err
	}
	n := dist.Rows()
	raw := dist.Raw()

	edges := make([]edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, edge{u: i, v: j, w: raw[i][j]})
		}
	}
	sort.SliceStable(edges, func(a, b int) bool { return edges[a].w < edges[b].w })

	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}

		return u
	}

	components := n
	for _, e := range edges {
		if components <= k {
			break
		}
		ru, rv := find(e.u), find(e.v)
		if ru == rv {
			continue
		}
		if rank[ru] < rank[rv] {
			ru, rv = rv, ru
		}
		parent[rv] = ru
		if rank[ru] == rank[rv] {
			rank[ru]++
		}
		components--
	}

	rep := make([]int, n)
	for i := range rep {
		rep[i] = find(i)
	}

	return canonical(rep), nil
}
