package topology

import (
	"errors"
	"sort"

	"github.com/katalvlaran/fronthaul/cluster"
	"github.com/katalvlaran/fronthaul/matrix"
)

var (
	// ErrNoSignals indicates nil or empty loss signals.
	ErrNoSignals = errors.New("topology: no loss signals")

	// ErrBadOptions indicates an invalid option value.
	ErrBadOptions = errors.New("topology: invalid options")

	// ErrTooManyClusters indicates that a Clusterer returned more groups than links.
	ErrTooManyClusters = errors.New("topology: clusterer returned more clusters than links")
)

// Defaults mirror the planning study the engine was built for.
const (
	DefaultNumLinks         = 3
	DefaultMaxShift         = 1.5 // seconds
	DefaultShiftSamples     = 8   // shift step = max(1, maxShift/8) buckets
	DefaultMinOverlap       = 10  // buckets
	DefaultOutlierThreshold = 0.2
)

// Similarity selects the pairwise similarity measure.
type Similarity int

const (
	// PearsonShift is the maximum Pearson correlation over sampled shifts.
	PearsonShift Similarity = iota
	// DTWBand is the length-normalized DTW similarity within a ±MaxShift band.
	DTWBand
)

// String implements fmt.Stringer.
func (s Similarity) String() string {
	switch s {
	case PearsonShift:
		return "pearson-shift"
	case DTWBand:
		return "dtw-band"
	default:
		return "unknown"
	}
}

// ParseSimilarity maps a configuration name to a Similarity.
func ParseSimilarity(name string) (Similarity, error) {
	switch name {
	case "", "pearson-shift":
		return PearsonShift, nil
	case "dtw-band":
		return DTWBand, nil
	default:
		return 0, ErrBadOptions
	}
}

// Anchor pins a cell to a link id from external ground truth.
type Anchor struct {
	CellID int
	LinkID int
}

// Options configures Infer.
type Options struct {
	NumLinks         int               // number of shared links (clusters)
	Anchors          []Anchor          // processed in order, first claim on a link wins
	MaxShift         float64           // maximum relative shift, seconds
	ShiftSamples     int               // shift step = max(1, maxShiftBuckets/ShiftSamples)
	MinOverlap       int               // minimum overlapping buckets for a correlation
	OutlierThreshold float64           // singleton links below this max correlation are outliers
	Similarity       Similarity        // pairwise measure
	Clusterer        cluster.Clusterer // nil means cluster.AverageLinkage{}
	Workers          int               // concurrent pair workers; <= 0 means 1
}

// DefaultOptions returns the defaults with anchors cell 1 → link 2, cell 2 → link 3.
func DefaultOptions() Options {
	return Options{
		NumLinks:         DefaultNumLinks,
		Anchors:          []Anchor{{CellID: 1, LinkID: 2}, {CellID: 2, LinkID: 3}},
		MaxShift:         DefaultMaxShift,
		ShiftSamples:     DefaultShiftSamples,
		MinOverlap:       DefaultMinOverlap,
		OutlierThreshold: DefaultOutlierThreshold,
		Similarity:       PearsonShift,
		Clusterer:        cluster.AverageLinkage{},
		Workers:          1,
	}
}

func (o Options) validate() error {
	if o.NumLinks < 1 || o.MaxShift < 0 || o.ShiftSamples < 1 || o.MinOverlap < 2 {
		return ErrBadOptions
	}
	if o.OutlierThreshold < 0 || o.OutlierThreshold > 1 {
		return ErrBadOptions
	}
	if o.Similarity != PearsonShift && o.Similarity != DTWBand {
		return ErrBadOptions
	}

	return nil
}

// Topology maps link id -> ascending cell ids. Every link id 1..NumLinks is
// present, possibly with no cells.
type Topology map[int][]int

// Links returns the link ids in ascending order.
func (t Topology) Links() []int {
	links := make([]int, 0, len(t))
	for l := range t {
		links = append(links, l)
	}
	sort.Ints(links)

	return links
}

// LinkOf returns the cell id -> link id assignment.
func (t Topology) LinkOf() map[int]int {
	out := make(map[int]int)
	for l, cells := range t {
		for _, c := range cells {
			out[c] = l
		}
	}

	return out
}

// Clone returns a deep copy.
func (t Topology) Clone() Topology {
	out := make(Topology, len(t))
	for l, cells := range t {
		out[l] = append([]int(nil), cells...)
	}

	return out
}

// Outlier is a singleton link whose only cell correlates weakly with every other cell.
type Outlier struct {
	CellID  int
	MaxCorr float64
}

// Result is the output of Infer.
type Result struct {
	Topology    Topology
	Correlation *matrix.Symmetric // indexed by ascending cell id
	Confidence  map[int]int       // link id -> 0..100
	Outliers    map[int]Outlier   // link id -> flagged cell
}
