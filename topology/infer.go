package topology

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/fronthaul/cluster"
	"github.com/katalvlaran/fronthaul/matrix"
	"github.com/katalvlaran/fronthaul/signal"
)

// Infer clusters cells into opts.NumLinks shared links.
//
// Steps:
//  1. CorrelationMatrix over all loss signals.
//  2. opts.Clusterer on the distance 1 − correlation, cut to NumLinks groups.
//  3. Relabel clusters to link ids with the anchors.
//  4. Confidence and Outliers from the correlation matrix.
//
// Errors: ErrNoSignals, ErrBadOptions, ErrTooManyClusters and wrapped
// clusterer/matrix errors.
func Infer(ls *signal.LossSignals, opts Options) (*Result, error) {
	corr, err := CorrelationMatrix(ls, opts)
	if err != nil {
		return nil, err
	}
	clusterer := opts.Clusterer
	if clusterer == nil {
		clusterer = cluster.AverageLinkage{}
	}
	labels, err := clusterer.Cluster(corr.Distance(), opts.NumLinks)
	if err != nil {
		return nil, fmt.Errorf("topology: clustering: %w", err)
	}
	topo, err := Relabel(ls.Cells, labels, opts.Anchors, opts.NumLinks)
	if err != nil {
		return nil, err
	}

	return &Result{
		Topology:    topo,
		Correlation: corr,
		Confidence:  Confidence(topo, corr),
		Outliers:    Outliers(topo, corr, opts.OutlierThreshold),
	}, nil
}

// Relabel maps arbitrary cluster labels to link ids 1..numLinks.
//
// Anchors are processed in slice order. An anchor claims its link for the
// cluster containing its cell unless the cell is unknown, the link id is out
// of range, the link was already claimed, or the cluster already holds a link;
// such anchors are ignored. Unclaimed clusters then take the unused link ids
// in ascending order, visiting clusters in ascending label order.
func Relabel(cells, labels []int, anchors []Anchor, numLinks int) (Topology, error) {
	if len(cells) != len(labels) {
		return nil, fmt.Errorf("topology: %d cells but %d labels: %w", len(cells), len(labels), ErrBadOptions)
	}
	pos := make(map[int]int, len(cells))
	for i, c := range cells {
		pos[c] = i
	}
	distinct := make(map[int]bool)
	for _, l := range labels {
		distinct[l] = true
	}
	if len(distinct) > numLinks {
		return nil, ErrTooManyClusters
	}

	linkOf := make(map[int]int, len(distinct)) // label -> link
	used := make(map[int]bool, numLinks)
	for _, a := range anchors {
		i, ok := pos[a.CellID]
		if !ok || a.LinkID < 1 || a.LinkID > numLinks || used[a.LinkID] {
			continue
		}
		if _, claimed := linkOf[labels[i]]; claimed {
			continue
		}
		linkOf[labels[i]] = a.LinkID
		used[a.LinkID] = true
	}

	free := make([]int, 0, numLinks)
	for l := 1; l <= numLinks; l++ {
		if !used[l] {
			free = append(free, l)
		}
	}
	ordered := make([]int, 0, len(distinct))
	for l := range distinct {
		ordered = append(ordered, l)
	}
	sort.Ints(ordered)
	for _, lab := range ordered {
		if _, ok := linkOf[lab]; ok {
			continue
		}
		linkOf[lab] = free[0]
		free = free[1:]
	}

	topo := make(Topology, numLinks)
	for l := 1; l <= numLinks; l++ {
		topo[l] = []int{}
	}
	for i, c := range cells {
		l := linkOf[labels[i]]
		topo[l] = append(topo[l], c)
	}
	for _, cs := range topo {
		sort.Ints(cs)
	}

	return topo, nil
}

// Confidence scores each link on a 0–100 scale: the mean intra-link pairwise
// correlation, or for a singleton link the cell's maximum correlation with any
// other cell. Empty links score 0. Scores round half to even.
func Confidence(topo Topology, corr *matrix.Symmetric) map[int]int {
	out := make(map[int]int, len(topo))
	for link, cells := range topo {
		switch len(cells) {
		case 0:
			out[link] = 0
		case 1:
			out[link] = pct(maxOther(corr, cells[0]))
		default:
			sum, n := 0.0, 0
			for a := 0; a < len(cells); a++ {
				for b := a + 1; b < len(cells); b++ {
					v, err := corr.Get(cells[a], cells[b])
					if err != nil {
						continue
					}
					sum += v
					n++
				}
			}
			if n == 0 {
				out[link] = 0
				continue
			}
			out[link] = pct(sum / float64(n))
		}
	}

	return out
}

// Outliers flags singleton links whose cell has a maximum correlation with
// every other cell below threshold.
func Outliers(topo Topology, corr *matrix.Symmetric, threshold float64) map[int]Outlier {
	out := make(map[int]Outlier)
	for link, cells := range topo {
		if len(cells) != 1 {
			continue
		}
		m := maxOther(corr, cells[0])
		if m < threshold {
			out[link] = Outlier{CellID: cells[0], MaxCorr: m}
		}
	}

	return out
}

// maxOther returns the maximum correlation of cell with any other cell (0 if none).
func maxOther(corr *matrix.Symmetric, cell int) float64 {
	i, err := corr.Index(cell)
	if err != nil {
		return 0
	}
	m, err := corr.MaxOffDiagonal(i)
	if err != nil {
		return 0
	}

	return m
}

func pct(v float64) int {
	return int(math.RoundToEven(100 * v))
}
