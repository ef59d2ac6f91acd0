package signal

import (
	"errors"
	"math"
)

var (
	// ErrNoCells indicates that no cell streams were supplied.
	ErrNoCells = errors.New("signal: no cells supplied")

	// ErrNoRecords indicates that every supplied cell stream is empty, so no
	// common time origin exists.
	ErrNoRecords = errors.New("signal: no records in any cell")

	// ErrBadWidth indicates a non-positive or non-finite bucket width.
	ErrBadWidth = errors.New("signal: bucket width must be finite and > 0")

	// ErrNonFinite indicates a NaN or ±Inf timestamp or value in a raw record.
	ErrNonFinite = errors.New("signal: NaN or Inf in record")

	// ErrNegativeCount indicates a negative packet counter in a slot record.
	ErrNegativeCount = errors.New("signal: negative packet counter")

	// ErrSpanTooLarge indicates a capture whose time span needs more buckets
	// than Options.MaxBuckets allows.
	ErrSpanTooLarge = errors.New("signal: capture span exceeds bucket limit")
)

// DefaultBucketWidth is the loss-signal bucket stride in seconds (200 ms,
// roughly 400 slots per bucket).
const DefaultBucketWidth = 0.2

// DefaultMaxBuckets bounds the loss-signal length (about 9.7 days at 200 ms).
const DefaultMaxBuckets = 1 << 22

// SlotRecord is one slot of packet statistics for a single cell.
type SlotRecord struct {
	Timestamp float64 // slot start, seconds
	Tx        int64   // transmitted packets
	Rx        int64   // received packets
	LateRx    int64   // packets received too late to be used
}

// Lost returns the number of packets lost in the slot (late packets count as lost).
func (r SlotRecord) Lost() int64 {
	return r.Tx - r.Rx + r.LateRx
}

// HasLoss reports whether the slot lost at least one packet.
func (r SlotRecord) HasLoss() bool {
	return r.Lost() > 0
}

// ThroughputSample is one symbol-level throughput observation.
type ThroughputSample struct {
	Timestamp float64 // seconds
	Kilobits  float64 // bits carried in the symbol, in kilobits
}

// Grid is the shared bucket axis of all loss signals.
type Grid struct {
	Origin  float64 // global minimum timestamp across cells (t_base)
	Width   float64 // bucket width, seconds
	Buckets int     // number of buckets spanning [min, max]
}

// Time returns the start time of bucket i.
func (g Grid) Time(i int) float64 {
	return g.Origin + float64(i)*g.Width
}

// Index returns the bucket index of timestamp ts and whether it falls on the grid.
func (g Grid) Index(ts float64) (int, bool) {
	idx := int((ts - g.Origin) / g.Width)
	if ts < g.Origin || idx >= g.Buckets {
		return 0, false
	}

	return idx, true
}

// LossSignals holds one loss-fraction series per cell on a common Grid.
type LossSignals struct {
	Grid   Grid
	Cells  []int             // ascending cell ids
	Series map[int][]float64 // cell id -> loss fraction per bucket, values in [0,1]
}

// Len returns the number of cells.
func (ls *LossSignals) Len() int {
	return len(ls.Cells)
}

// Options configures BuildLossSignals.
type Options struct {
	// BucketWidth is the bucket stride in seconds.
	BucketWidth float64

	// MaxBuckets caps the series length; <= 0 means DefaultMaxBuckets.
	MaxBuckets int
}

// DefaultOptions returns Options with the 200 ms bucket width.
func DefaultOptions() Options {
	return Options{BucketWidth: DefaultBucketWidth, MaxBuckets: DefaultMaxBuckets}
}

func (o Options) maxBuckets() int {
	if o.MaxBuckets <= 0 {
		return DefaultMaxBuckets
	}

	return o.MaxBuckets
}

func (o Options) validate() error {
	if o.BucketWidth <= 0 || math.IsNaN(o.BucketWidth) || math.IsInf(o.BucketWidth, 0) {
		return ErrBadWidth
	}

	return nil
}
