package capacity

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fronthaul/demand"
)

// WithoutBuffer returns the smallest rate that keeps every cell within
// maxLossPct lossy slots when nothing is buffered.
//
// With per-cell masks, each cell contributes Percentile(aggregate[mask],
// 100 − maxLossPct); the result is the maximum over cells, or max(aggregate)
// when no cell carried traffic. Without masks, the percentile is taken over
// slots with positive demand, or over all slots if none has any.
// An empty aggregate yields 0.
//
// Errors: ErrBadLossBound, ErrNonFinite, ErrLengthMismatch.
func WithoutBuffer(aggregate []float64, perCellTraffic map[int][]bool, maxLossPct float64) (float64, error) {
	if err := checkLossBound(maxLossPct); err != nil {
		return 0, err
	}
	if err := checkSeries(aggregate, perCellTraffic); err != nil {
		return 0, err
	}
	if len(aggregate) == 0 {
		return 0, nil
	}
	pct := 100 - maxLossPct

	if len(perCellTraffic) > 0 {
		found, best := false, 0.0
		for _, cid := range sortedCells(perCellTraffic) {
			vals := pick(aggregate, perCellTraffic[cid])
			if len(vals) == 0 {
				continue
			}
			c := Percentile(vals, pct)
			if !found || c > best {
				best, found = c, true
			}
		}
		if !found {
			return maxOf(aggregate), nil
		}

		return best, nil
	}

	vals := make([]float64, 0, len(aggregate))
	for _, d := range aggregate {
		if d > 0 {
			vals = append(vals, d)
		}
	}
	if len(vals) == 0 {
		vals = aggregate
	}

	return Percentile(vals, pct), nil
}

// SimulateLoss replays the slot series through a leaky bucket of
// BufferDuration × capacity Gb and returns the worst per-cell percentage of
// traffic slots that were lossy.
//
// Per slot with demand d:
//
//	backlog += max(0, d−C)·slot       overflow above the line rate
//	lossy    = backlog > BufferDuration·C; backlog is then clamped to the limit
//	backlog -= min(backlog, max(0, C−d)·slot)   spare line rate drains it
//
// A cell's loss is lossy∧mask slots over mask slots; cells with no traffic
// slots are ignored. Without masks, loss is measured over all slots with
// positive demand. Masks must have the length of aggregate.
func SimulateLoss(aggregate []float64, perCellTraffic map[int][]bool, capacity float64, p Params) float64 {
	limit := p.BufferDuration * capacity
	lossy := make([]bool, len(aggregate))
	backlog := 0.0
	for i, d := range aggregate {
		backlog += math.Max(0, (d-capacity)*p.SlotDuration)
		if backlog > limit {
			lossy[i] = true
			backlog = limit
		}
		backlog -= math.Min(backlog, math.Max(0, (capacity-d)*p.SlotDuration))
	}

	if len(perCellTraffic) > 0 {
		worst := 0.0
		for _, cid := range sortedCells(perCellTraffic) {
			traffic, lost := 0, 0
			for i, on := range perCellTraffic[cid] {
				if !on {
					continue
				}
				traffic++
				if lossy[i] {
					lost++
				}
			}
			if traffic == 0 {
				continue
			}
			worst = math.Max(worst, 100*float64(lost)/float64(traffic))
		}

		return worst
	}

	traffic, lost := 0, 0
	for i, d := range aggregate {
		if d <= 0 {
			continue
		}
		traffic++
		if lossy[i] {
			lost++
		}
	}
	if traffic == 0 {
		return 0
	}

	return 100 * float64(lost) / float64(traffic)
}

// WithBuffer bisects the candidate rate over [0, 1.1 × max(aggregate)] for
// p.Iterations steps and returns the upper end: the smallest rate found whose
// SimulateLoss stays within p.MaxLossPct. An empty aggregate yields 0.
//
// Errors: ErrBadParams, ErrBadLossBound, ErrNonFinite, ErrLengthMismatch.
func WithBuffer(aggregate []float64, perCellTraffic map[int][]bool, p Params) (float64, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	if err := checkSeries(aggregate, perCellTraffic); err != nil {
		return 0, err
	}
	if len(aggregate) == 0 {
		return 0, nil
	}

	lo, hi := 0.0, math.Max(0, maxOf(aggregate))*searchHeadroom
	for i := 0; i < p.Iterations; i++ {
		mid := (lo + hi) / 2
		if SimulateLoss(aggregate, perCellTraffic, mid, p) <= p.MaxLossPct {
			hi = mid
		} else {
			lo = mid
		}
	}

	return hi, nil
}

// EstimateLinks computes both models for every link. Each link's traffic masks come
// from Series.TrafficMask(p.TrafficThreshold). Links are estimated
// concurrently by up to p.Workers goroutines; nil series estimate to zero.
func EstimateLinks(series map[int]*demand.Series, p Params) (map[int]Estimate, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	links := make([]int, 0, len(series))
	for l := range series {
		links = append(links, l)
	}
	sort.Ints(links)

	out := make([]Estimate, len(links))
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, l := range links {
		s := series[l]
		if s.Empty() {
			continue
		}
		g.Go(func() error {
			masks := s.TrafficMask(p.TrafficThreshold)
			nb, err := WithoutBuffer(s.Aggregate, masks, p.MaxLossPct)
			if err != nil {
				return fmt.Errorf("link %d: %w", l, err)
			}
			wb, err := WithBuffer(s.Aggregate, masks, p)
			if err != nil {
				return fmt.Errorf("link %d: %w", l, err)
			}
			out[i] = Estimate{NoBuffer: nb, WithBuffer: wb}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make(map[int]Estimate, len(links))
	for i, l := range links {
		res[l] = out[i]
	}

	return res, nil
}

// Reduction returns, per link, the bandwidth saved by buffering as a whole
// percentage round(100·(nb−wb)/nb), rounding half to even; 0 when nb <= 0.
func Reduction(est map[int]Estimate) map[int]int {
	out := make(map[int]int, len(est))
	for l, e := range est {
		if e.NoBuffer <= 0 {
			out[l] = 0
			continue
		}
		out[l] = int(math.RoundToEven(100 * (e.NoBuffer - e.WithBuffer) / e.NoBuffer))
	}

	return out
}

func checkSeries(aggregate []float64, masks map[int][]bool) error {
	for i, d := range aggregate {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("slot %d: %w", i, ErrNonFinite)
		}
	}
	for cid, m := range masks {
		if len(m) != len(aggregate) {
			return fmt.Errorf("cell %d: %d mask slots for %d demand slots: %w", cid, len(m), len(aggregate), ErrLengthMismatch)
		}
	}

	return nil
}

func pick(values []float64, mask []bool) []float64 {
	out := make([]float64, 0, len(values))
	for i, on := range mask {
		if on {
			out = append(out, values[i])
		}
	}

	return out
}

func maxOf(values []float64) float64 {
	m := math.Inf(-1)
	for _, v := range values {
		m = math.Max(m, v)
	}

	return m
}

func sortedCells(m map[int][]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}
