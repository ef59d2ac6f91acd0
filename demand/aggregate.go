package demand

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fronthaul/signal"
)

// Aggregate builds one Series per link of topo from per-cell throughput.
//
// Per link:
//  1. t0/t1 = min/max sample timestamp over the link's cells; t1 is capped at
//     t0+Window when Window > 0.
//  2. nSymbols = int((t1-t0)/SymbolDuration) + 1, bounded by MaxSymbols;
//     fewer than one slot yields an empty Series.
//  3. Each sample in [t0, t1] adds Kilobits×1000 bits to symbol
//     round((ts-t0)/SymbolDuration) (half to even), clipped to the axis.
//  4. Slot k sums symbols [k·S, (k+1)·S); trailing partial slots are dropped.
//     SlotTimes[k] = t0 + (k+0.5)·SlotDuration, Gbps = bits/(SlotDuration·1e9).
//
// Cells named by topo with no stream contribute a zero series. Links are
// processed concurrently by up to opts.Workers goroutines.
//
// Errors: ErrBadOptions, ErrNonFinite, ErrSpanTooLarge.
// Complexity: O(Σ samples + cells·symbols) per link.
func Aggregate(topo map[int][]int, throughput map[int][]signal.ThroughputSample, opts Options) (map[int]*Series, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	for cid, samples := range throughput {
		for i, s := range samples {
			if !finite(s.Timestamp) || !finite(s.Kilobits) {
				return nil, fmt.Errorf("cell %d sample %d: %w", cid, i, ErrNonFinite)
			}
		}
	}

	links := make([]int, 0, len(topo))
	for l := range topo {
		links = append(links, l)
	}
	sort.Ints(links)

	out := make([]*Series, len(links))
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, l := range links {
		g.Go(func() error {
			s, err := aggregateLink(l, topo[l], throughput, opts)
			if err != nil {
				return fmt.Errorf("link %d: %w", l, err)
			}
			out[i] = s

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make(map[int]*Series, len(links))
	for i, l := range links {
		res[l] = out[i]
	}

	return res, nil
}

func aggregateLink(link int, cells []int, throughput map[int][]signal.ThroughputSample, opts Options) (*Series, error) {
	cells = append([]int(nil), cells...)
	sort.Ints(cells)
	empty := &Series{Link: link, Cells: cells, PerCell: map[int][]float64{}}

	t0, t1 := math.Inf(1), math.Inf(-1)
	for _, cid := range cells {
		for _, s := range throughput[cid] {
			t0 = math.Min(t0, s.Timestamp)
			t1 = math.Max(t1, s.Timestamp)
		}
	}
	if math.IsInf(t0, 1) {
		return empty, nil
	}
	if opts.Window > 0 {
		t1 = math.Min(t1, t0+opts.Window)
	}

	span := (t1 - t0) / opts.SymbolDuration
	if limit := opts.maxSymbols(); !(span < float64(limit)) {
		return nil, fmt.Errorf("%.0f s, limit %d symbols: %w", t1-t0, limit, ErrSpanTooLarge)
	}
	nSymbols := int(span) + 1
	if nSymbols < opts.SymbolsPerSlot {
		return empty, nil
	}
	nSlots := nSymbols / opts.SymbolsPerSlot

	s := &Series{
		Link:      link,
		Cells:     cells,
		SlotTimes: make([]float64, nSlots),
		Aggregate: make([]float64, nSlots),
		PerCell:   make(map[int][]float64, len(cells)),
	}
	for k := range s.SlotTimes {
		s.SlotTimes[k] = t0 + (float64(k)+0.5)*opts.SlotDuration
	}

	bits := make([]float64, nSymbols)
	for _, cid := range cells {
		for i := range bits {
			bits[i] = 0
		}
		for _, smp := range throughput[cid] {
			if smp.Timestamp < t0 || smp.Timestamp > t1 {
				continue
			}
			idx := int(math.RoundToEven((smp.Timestamp - t0) / opts.SymbolDuration))
			idx = max(0, min(idx, nSymbols-1))
			bits[idx] += smp.Kilobits * bitsPerKilobit
		}

		d := make([]float64, nSlots)
		for k := range d {
			sum := 0.0
			for _, b := range bits[k*opts.SymbolsPerSlot : (k+1)*opts.SymbolsPerSlot] {
				sum += b
			}
			d[k] = sum / (opts.SlotDuration * gbps)
		}
		s.PerCell[cid] = d
	}
	s.sumCells()

	return s, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
