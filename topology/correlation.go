package topology

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/fronthaul/dtw"
	"github.com/katalvlaran/fronthaul/matrix"
	"github.com/katalvlaran/fronthaul/signal"
)

// Shifts returns the sampled relative shifts in buckets:
// -maxShift, -maxShift+step, ... and +maxShift as the last element, with
// step = max(1, maxShift/samples).
func Shifts(maxShift, samples int) []int {
	if maxShift <= 0 {
		return []int{0}
	}
	step := maxShift / samples
	if step < 1 {
		step = 1
	}
	out := make([]int, 0, 2*maxShift/step+2)
	for s := -maxShift; s <= maxShift; s += step {
		out = append(out, s)
	}
	if out[len(out)-1] != maxShift {
		out = append(out, maxShift)
	}

	return out
}

// ShiftCorrelation returns the maximum Pearson correlation of a and b over the
// given shifts of b relative to a, clamped to [0,1].
//
// For shift s >= 0, a[:L-s] is paired with b[s:]; for s < 0, a[-s:] with b[:L+s].
// Overlaps shorter than minOverlap and non-finite coefficients (zero variance)
// are skipped; series shorter than minOverlap, or pairs with no usable shift,
// score 0. Anti-correlation is not evidence of a shared link and clamps to 0.
func ShiftCorrelation(a, b []float64, shifts []int, minOverlap int) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < minOverlap {
		return 0
	}
	best := -1.0
	for _, s := range shifts {
		var x, y []float64
		if s >= 0 {
			if s >= n {
				continue
			}
			x, y = a[:n-s], b[s:n]
		} else {
			if -s >= n {
				continue
			}
			x, y = a[-s:n], b[:n+s]
		}
		if len(x) < minOverlap {
			continue
		}
		r := stat.Correlation(x, y, nil)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		if r > best {
			best = r
		}
	}

	return math.Max(0, math.Min(1, best))
}

// shiftBuckets converts the MaxShift seconds into whole buckets.
func shiftBuckets(maxShift, width float64) int {
	return int(maxShift / width)
}

// CorrelationMatrix computes the pairwise similarity of all loss signals.
// The matrix is indexed by ls.Cells (ascending) with a unit diagonal.
//
// Rows are evaluated concurrently by up to opts.Workers goroutines; each row
// writes only its own (i,j)/(j,i) entries for j > i, so the result does not
// depend on scheduling. The finished matrix must pass Symmetric.Validate.
func CorrelationMatrix(ls *signal.LossSignals, opts Options) (*matrix.Symmetric, error) {
	if ls == nil || ls.Len() == 0 {
		return nil, ErrNoSignals
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	corr, err := matrix.NewIdentity(ls.Cells)
	if err != nil {
		return nil, err
	}

	maxShift := shiftBuckets(opts.MaxShift, ls.Grid.Width)
	shifts := Shifts(maxShift, opts.ShiftSamples)
	pairScore := func(a, b []float64) (float64, error) {
		if opts.Similarity == DTWBand {
			if len(a) < opts.MinOverlap || len(b) < opts.MinOverlap {
				return 0, nil
			}

			return dtw.Similarity(a, b, maxShift)
		}

		return ShiftCorrelation(a, b, shifts, opts.MinOverlap), nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	cells := ls.Cells
	for i := range cells {
		g.Go(func() error {
			a := ls.Series[cells[i]]
			for j := i + 1; j < len(cells); j++ {
				r, err := pairScore(a, ls.Series[cells[j]])
				if err != nil {
					return err
				}
				if err := corr.SetPair(i, j, r); err != nil {
					return err
				}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := corr.Validate(); err != nil {
		return nil, fmt.Errorf("topology: correlation matrix: %w", err)
	}

	return corr, nil
}
