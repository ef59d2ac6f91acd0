package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/fronthaul/capacity"
	"github.com/katalvlaran/fronthaul/config"
	"github.com/katalvlaran/fronthaul/demand"
	"github.com/katalvlaran/fronthaul/rootcause"
	"github.com/katalvlaran/fronthaul/signal"
	"github.com/katalvlaran/fronthaul/topology"
)

// runner carries one run's configuration and instrumentation.
type runner struct {
	cfg     config.Config
	log     *zap.Logger
	metrics *metrics
}

func newRunner(cfg config.Config, opts []Option) (*runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := newSettings(opts)

	return &runner{cfg: cfg, log: s.logger, metrics: newMetrics(s.registerer)}, nil
}

// stage times fn, records it under name and checks ctx first.
func (r *runner) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("pipeline: before %s: %w", name, err)
	}
	start := time.Now()
	if err := fn(); err != nil {
		r.log.Error("stage failed", zap.String("stage", name), zap.Error(err))

		return fmt.Errorf("pipeline: %s: %w", name, err)
	}
	elapsed := time.Since(start)
	r.metrics.stageSeconds.WithLabelValues(name).Observe(elapsed.Seconds())
	r.log.Debug("stage done", zap.String("stage", name), zap.Duration("elapsed", elapsed))

	return nil
}

// Run executes every stage on in and returns a fresh Result.
//
// Errors: config.ErrInvalidConfig, ErrNoInput, ErrNonFinite, ctx errors and
// the wrapped errors of each stage.
func Run(ctx context.Context, in Input, cfg config.Config, opts ...Option) (*Result, error) {
	r, err := newRunner(cfg, opts)
	if err != nil {
		return nil, err
	}
	if len(in.PacketStats) == 0 {
		return nil, ErrNoInput
	}
	res := &Result{}
	r.log.Info("analysis started",
		zap.Int("cells", len(in.PacketStats)),
		zap.Int("links", cfg.Topology.NumLinks))

	var throughput map[int][]signal.ThroughputSample
	err = r.stage(ctx, "scrub", func() error {
		throughput, res.Scrubbed, err = scrub(in.Throughput)
		total := 0
		for _, n := range res.Scrubbed {
			total += n
		}
		r.metrics.scrubbed.Add(float64(total))

		return err
	})
	if err != nil {
		return nil, err
	}

	var ls *signal.LossSignals
	err = r.stage(ctx, "signals", func() error {
		ls, err = signal.BuildLossSignals(in.PacketStats, cfg.SignalOptions())
		if err != nil {
			return err
		}
		res.Cells, res.Grid = ls.Cells, ls.Grid

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, "topology", func() error {
		topoOpts, err := cfg.TopologyOptions()
		if err != nil {
			return err
		}
		inf, err := topology.Infer(ls, topoOpts)
		if err != nil {
			return err
		}
		res.Topology, res.Correlation = inf.Topology, inf.Correlation
		res.Confidence, res.Outliers = inf.Confidence, inf.Outliers
		r.metrics.outliers.Set(float64(len(inf.Outliers)))
		for _, l := range inf.Topology.Links() {
			r.log.Info("link inferred",
				zap.Int("link", l),
				zap.Ints("cells", inf.Topology[l]),
				zap.Int("confidence", inf.Confidence[l]))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, "demand", func() error {
		res.Demand, err = demand.Aggregate(res.Topology, throughput, cfg.DemandOptions())

		return err
	})
	if err != nil {
		return nil, err
	}

	if err := r.analyze(ctx, res); err != nil {
		return nil, err
	}
	res.Timeline = timelines(ls, res.Topology)
	r.log.Info("analysis finished", zap.Int("congested_links", len(res.Events)))

	return res, nil
}

// analyze runs the capacity, attribution and summary stages on res.Demand.
func (r *runner) analyze(ctx context.Context, res *Result) error {
	err := r.stage(ctx, "capacity", func() error {
		est, err := capacity.EstimateLinks(res.Demand, r.cfg.CapacityParams())
		if err != nil {
			return err
		}
		res.Capacity, res.Savings = est, capacity.Reduction(est)
		for l, e := range est {
			r.metrics.capacityGbps.WithLabelValues(linkLabel(l), "no_buffer").Set(e.NoBuffer)
			r.metrics.capacityGbps.WithLabelValues(linkLabel(l), "with_buffer").Set(e.WithBuffer)
			r.metrics.savingsPct.WithLabelValues(linkLabel(l)).Set(float64(res.Savings[l]))
			r.log.Info("link sized",
				zap.Int("link", l),
				zap.Float64("no_buffer_gbps", e.NoBuffer),
				zap.Float64("with_buffer_gbps", e.WithBuffer),
				zap.Int("savings_pct", res.Savings[l]))
		}

		return nil
	})
	if err != nil {
		return err
	}

	err = r.stage(ctx, "attribute", func() error {
		res.Events = rootcause.Attribute(res.Demand, res.Capacity, r.cfg.RootCause.MaxEvents)
		for l, ev := range res.Events {
			r.metrics.congestion.WithLabelValues(linkLabel(l)).Add(float64(len(ev)))
		}

		return nil
	})
	if err != nil {
		return err
	}

	return r.stage(ctx, "summarize", func() error {
		res.Summary = summarize(res.Demand)
		res.Assessment = assess(res.Topology, res.Demand, res.Capacity, r.cfg.Capacity.MaxLossPct)

		return checkFinite(res)
	})
}

// scrub cleans every cell's throughput in ascending cell order.
func scrub(in map[int][]signal.ThroughputSample) (map[int][]signal.ThroughputSample, map[int]int, error) {
	cells := make([]int, 0, len(in))
	for c := range in {
		cells = append(cells, c)
	}
	sort.Ints(cells)

	out := make(map[int][]signal.ThroughputSample, len(in))
	counts := make(map[int]int, len(in))
	for _, c := range cells {
		clean, n, err := signal.ScrubThroughput(in[c])
		if err != nil {
			return nil, nil, fmt.Errorf("cell %d: %w", c, err)
		}
		out[c], counts[c] = clean, n
	}

	return out, counts, nil
}
