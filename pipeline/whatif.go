package pipeline

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/fronthaul/config"
	"github.com/katalvlaran/fronthaul/demand"
)

func (sc Scenario) validate() error {
	ok := func(v float64) bool { return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }
	if !ok(sc.Multiplier) {
		return fmt.Errorf("%w: multiplier %v", ErrBadScenario, sc.Multiplier)
	}
	for c, m := range sc.PerCell {
		if !ok(m) {
			return fmt.Errorf("%w: cell %d multiplier %v", ErrBadScenario, c, m)
		}
	}

	return nil
}

func (sc Scenario) factor(cell int) float64 {
	f := sc.Multiplier
	if f == 0 {
		f = 1
	}
	if m, ok := sc.PerCell[cell]; ok {
		f *= m
	}

	return f
}

// WhatIf scales the per-cell demand of base by sc and recomputes capacity,
// savings, attribution and summaries on the base topology. base is not
// modified; inference outputs (topology, correlation, confidence, outliers,
// loss timeline) are carried over.
func WhatIf(ctx context.Context, base *Result, cfg config.Config, sc Scenario, opts ...Option) (*Result, error) {
	if base == nil {
		return nil, ErrNilResult
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	r, err := newRunner(cfg, opts)
	if err != nil {
		return nil, err
	}
	r.log.Info("what-if started",
		zap.Float64("multiplier", sc.Multiplier),
		zap.Int("cell_overrides", len(sc.PerCell)))

	res := &Result{
		Cells:       base.Cells,
		Grid:        base.Grid,
		Scrubbed:    base.Scrubbed,
		Topology:    base.Topology.Clone(),
		Correlation: base.Correlation,
		Confidence:  base.Confidence,
		Outliers:    base.Outliers,
		Timeline:    base.Timeline,
		Demand:      make(map[int]*demand.Series, len(base.Demand)),
	}
	for l, s := range base.Demand {
		if s == nil {
			continue
		}
		res.Demand[l] = s.Scale(sc.factor)
	}

	if err := r.analyze(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}
