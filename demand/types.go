package demand

import (
	"errors"
	"math"
)

var (
	// ErrNonFinite indicates a NaN or ±Inf timestamp or bit count.
	ErrNonFinite = errors.New("demand: NaN or Inf in throughput sample")

	// ErrBadOptions indicates a non-positive duration or slot size.
	ErrBadOptions = errors.New("demand: invalid options")

	// ErrSpanTooLarge indicates a link whose analysed span needs more symbols
	// than Options.MaxSymbols allows.
	ErrSpanTooLarge = errors.New("demand: capture span exceeds symbol limit")
)

// Radio timing defaults.
const (
	DefaultSlotDuration     = 500e-6 // seconds
	DefaultSymbolsPerSlot   = 14
	DefaultSymbolDuration   = 500e-6 / 14 // seconds, ~35.7 µs
	DefaultWindow           = 60.0        // seconds of analysis from the first sample
	DefaultTrafficThreshold = 0.01        // Gbps; a cell "carries traffic" above this
	DefaultMaxSymbols       = 1 << 26     // about 40 min of symbols per link
	bitsPerKilobit          = 1000.0
	gbps                    = 1e9
)

// Options configures Aggregate.
type Options struct {
	SymbolDuration float64 // seconds
	SymbolsPerSlot int
	SlotDuration   float64 // seconds
	Window         float64 // analysis window from the first sample, seconds; 0 = unbounded
	Workers        int     // links aggregated concurrently; <= 0 means 1
	MaxSymbols     int     // symbol axis cap per link; <= 0 means DefaultMaxSymbols
}

// DefaultOptions returns the O-RAN numerology used by the engine.
func DefaultOptions() Options {
	return Options{
		SymbolDuration: DefaultSymbolDuration,
		SymbolsPerSlot: DefaultSymbolsPerSlot,
		SlotDuration:   DefaultSlotDuration,
		Window:         DefaultWindow,
		Workers:        1,
		MaxSymbols:     DefaultMaxSymbols,
	}
}

func (o Options) maxSymbols() int {
	if o.MaxSymbols <= 0 {
		return DefaultMaxSymbols
	}

	return o.MaxSymbols
}

func (o Options) validate() error {
	if !(o.SymbolDuration > 0) || !(o.SlotDuration > 0) || o.SymbolsPerSlot < 1 {
		return ErrBadOptions
	}
	if o.Window < 0 || math.IsNaN(o.Window) || math.IsInf(o.SymbolDuration, 0) || math.IsInf(o.SlotDuration, 0) {
		return ErrBadOptions
	}

	return nil
}

// Series is the slot-level demand of one link.
type Series struct {
	Link      int
	Cells     []int             // ascending cell ids assigned to the link
	SlotTimes []float64         // slot mid-points, seconds
	Aggregate []float64         // Gbps per slot
	PerCell   map[int][]float64 // cell id -> Gbps per slot, same length as Aggregate
}

// Len returns the number of slots.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}

	return len(s.Aggregate)
}

// Empty reports whether the series has no slots.
func (s *Series) Empty() bool {
	return s.Len() == 0
}

// TrafficMask returns, per cell, whether the cell's demand exceeds threshold
// in each slot. Empty series yield an empty map.
func (s *Series) TrafficMask(threshold float64) map[int][]bool {
	out := make(map[int][]bool, len(s.PerCell))
	if s.Empty() {
		return out
	}
	for cid, d := range s.PerCell {
		m := make([]bool, len(d))
		for k, v := range d {
			m[k] = v > threshold
		}
		out[cid] = m
	}

	return out
}

// Scale returns a copy of the series with cell c's demand multiplied by
// factor(c). Aggregate is recomputed from the scaled cells.
func (s *Series) Scale(factor func(cell int) float64) *Series {
	out := &Series{
		Link:      s.Link,
		Cells:     append([]int(nil), s.Cells...),
		SlotTimes: append([]float64(nil), s.SlotTimes...),
		Aggregate: make([]float64, len(s.Aggregate)),
		PerCell:   make(map[int][]float64, len(s.PerCell)),
	}
	for cid, src := range s.PerCell {
		f := factor(cid)
		dst := make([]float64, len(src))
		for k, v := range src {
			dst[k] = v * f
		}
		out.PerCell[cid] = dst
	}
	out.sumCells()

	return out
}

// sumCells recomputes Aggregate as the ascending-cell-order sum of PerCell.
func (s *Series) sumCells() {
	for k := range s.Aggregate {
		s.Aggregate[k] = 0
	}
	for _, cid := range s.Cells {
		for k, v := range s.PerCell[cid] {
			s.Aggregate[k] += v
		}
	}
}
