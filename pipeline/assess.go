package pipeline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/fronthaul/capacity"
	"github.com/katalvlaran/fronthaul/demand"
	"github.com/katalvlaran/fronthaul/signal"
	"github.com/katalvlaran/fronthaul/topology"
)

// Risk scoring weights and thresholds.
const (
	riskOverflowWeight   = 30.0
	riskOverflowScale    = 5.0 // % of traffic slots over capacity for full weight
	riskExhaustionWeight = 40.0
	riskExhaustionScale  = 3.0
	riskBurstWeight      = 30.0
	riskHigh             = 70.0
	riskMedium           = 40.0

	upgradeMargin     = 1.05 // recommend an upgrade above 5 % shortfall
	crowdedLinkCells  = 8
	syncBurstSlots    = 5
	syncBurstVariance = 0.8
	cvEpsilon         = 1e-9
)

// stride returns the sampling step that keeps at most limit points of n.
func stride(n, limit int) int {
	if n <= limit {
		return 1
	}

	return (n + limit - 1) / limit
}

func every(values []float64, step int) []float64 {
	out := make([]float64, 0, len(values)/step+1)
	for i := 0; i < len(values); i += step {
		out = append(out, values[i])
	}

	return out
}

// summarize computes mean/peak demand and a sparkline per non-empty link.
func summarize(series map[int]*demand.Series) map[int]LinkSummary {
	out := make(map[int]LinkSummary, len(series))
	for l, s := range series {
		if s.Empty() {
			continue
		}
		peak := math.Inf(-1)
		for _, v := range s.Aggregate {
			peak = math.Max(peak, v)
		}
		step := stride(s.Len(), maxSummaryPoints)
		out[l] = LinkSummary{
			Slots:    s.Len(),
			MeanGbps: stat.Mean(s.Aggregate, nil),
			PeakGbps: peak,
			Times:    every(s.SlotTimes, step),
			Demand:   every(s.Aggregate, step),
		}
	}

	return out
}

// assess scores congestion risk and derives recommendations per link.
func assess(topo topology.Topology, series map[int]*demand.Series, est map[int]capacity.Estimate, maxLossPct float64) map[int]Assessment {
	out := make(map[int]Assessment, len(topo))
	for _, l := range topo.Links() {
		s := series[l]
		e := est[l]
		a := Assessment{}
		a.RiskScore, a.RiskLevel, a.Reason = risk(s, e.WithBuffer)
		a.Fingerprint = fingerprint(s, e.WithBuffer)
		a.Recommendations = recommend(l, e, len(topo[l]), maxLossPct)
		out[l] = a
	}

	return out
}

// overflowPct is the share of traffic slots whose demand exceeds capacity.
func overflowPct(agg []float64, capGbps float64) float64 {
	over, traffic := 0, 0
	for _, d := range agg {
		if d > capGbps {
			over++
		}
		if d > 0 {
			traffic++
		}
	}

	return 100 * float64(over) / float64(max(1, traffic))
}

// burstiness is the population coefficient of variation of the demand.
func burstiness(agg []float64) float64 {
	mean, std := stat.PopMeanStdDev(agg, nil)

	return std / (mean + cvEpsilon)
}

func risk(s *demand.Series, capGbps float64) (float64, string, string) {
	if s.Empty() || capGbps <= 0 {
		return 0, "", "No traffic"
	}
	over := overflowPct(s.Aggregate, capGbps)
	burst := math.Min(1, burstiness(s.Aggregate))
	score := riskOverflowWeight*(over/riskOverflowScale) +
		riskExhaustionWeight*math.Min(1, over/riskExhaustionScale) +
		riskBurstWeight*burst
	score = math.Max(0, math.Min(100, score))
	score = math.Round(score*10) / 10

	switch {
	case score >= riskHigh:
		return score, "High", fmt.Sprintf("Demand exceeds capacity in %.1f%% of traffic slots. Buffer exhaustion contributes to congestion risk.", over)
	case score >= riskMedium:
		return score, "Medium", fmt.Sprintf("Moderate overflow (%.1f%% of slots). Consider capacity increase for headroom.", over)
	default:
		return score, "Low", "Link has adequate headroom. Current capacity sufficient for observed traffic."
	}
}

// fingerprint tells long synchronized peaks apart from short buffer overruns.
func fingerprint(s *demand.Series, capGbps float64) string {
	if s.Empty() || capGbps <= 0 {
		return "No traffic"
	}
	run, longest := 0, 0
	for _, d := range s.Aggregate {
		if d > capGbps {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	if longest == 0 {
		return "No congestion"
	}
	if longest >= syncBurstSlots && burstiness(s.Aggregate) > syncBurstVariance {
		return "Synchronized traffic peaks"
	}

	return "Switch buffer bottleneck"
}

func recommend(link int, e capacity.Estimate, cells int, maxLossPct float64) []string {
	var recs []string
	if e.NoBuffer > e.WithBuffer*upgradeMargin {
		recs = append(recs, fmt.Sprintf("Increase Link %d from %.1f Gbps to %.1f Gbps to keep packet loss ≤%g%%",
			link, e.WithBuffer, e.NoBuffer, maxLossPct))
	}
	if cells > crowdedLinkCells {
		recs = append(recs, fmt.Sprintf("Link %d has %d cells. Consider load balancing by reassigning cells to other links.", link, cells))
	}
	if len(recs) == 0 {
		recs = append(recs, fmt.Sprintf("Link %d capacity is adequate. No action required.", link))
	}

	return recs
}

// timelines down-samples every link's cell loss series to at most 150 points.
func timelines(ls *signal.LossSignals, topo topology.Topology) map[int]LossTimeline {
	step := stride(ls.Grid.Buckets, maxTimelinePoints)
	times := make([]float64, 0, ls.Grid.Buckets/step+1)
	for i := 0; i < ls.Grid.Buckets; i += step {
		times = append(times, ls.Grid.Time(i))
	}

	out := make(map[int]LossTimeline, len(topo))
	for l, cells := range topo {
		tl := LossTimeline{Times: times, Cells: make(map[int][]float64, len(cells))}
		for _, c := range cells {
			if s, ok := ls.Series[c]; ok {
				tl.Cells[c] = every(s, step)
			}
		}
		out[l] = tl
	}

	return out
}

// checkFinite rejects NaN/Inf in the numeric outputs of res.
func checkFinite(res *Result) error {
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
	for l, e := range res.Capacity {
		if bad(e.NoBuffer) || bad(e.WithBuffer) {
			return fmt.Errorf("link %d capacity: %w", l, ErrNonFinite)
		}
	}
	for l, s := range res.Summary {
		if bad(s.MeanGbps) || bad(s.PeakGbps) {
			return fmt.Errorf("link %d summary: %w", l, ErrNonFinite)
		}
	}
	for l, evs := range res.Events {
		for _, ev := range evs {
			for _, c := range ev.Contributors {
				if bad(c.Pct) {
					return fmt.Errorf("link %d event at %v: %w", l, ev.Time, ErrNonFinite)
				}
			}
		}
	}

	return nil
}
