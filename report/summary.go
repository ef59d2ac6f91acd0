package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/fronthaul/pipeline"
)

// DefaultSummaryEvents is the number of congestion events WriteSummary lists per link.
const DefaultSummaryEvents = 3

// Rate formats a Gbps figure with an SI prefix, rounded half away from zero
// to two decimals, e.g. 7.777 -> "7.78 Gbps".
func Rate(gbps float64) string {
	v, prefix := humanize.ComputeSI(gbps * 1e9)

	return humanize.Ftoa(math.Round(v*100)/100) + " " + prefix + "bps"
}

// WriteSummary prints a per-link digest of res: topology with confidence,
// both capacities, buffering savings, risk, and up to maxEvents congestion
// events (all when maxEvents <= 0).
func WriteSummary(w io.Writer, res *pipeline.Result, maxEvents int) error {
	if res == nil {
		return errors.New("report: nil result")
	}
	var b strings.Builder
	total := 0
	for _, n := range res.Scrubbed {
		total += n
	}
	fmt.Fprintf(&b, "Cells: %d, links: %d, scrubbed samples: %s\n",
		len(res.Cells), len(res.Topology), humanize.Comma(int64(total)))

	for _, l := range res.Topology.Links() {
		fmt.Fprintf(&b, "\nLink %d: cells %v (confidence %d%%)\n", l, res.Topology[l], res.Confidence[l])
		if o, ok := res.Outliers[l]; ok {
			fmt.Fprintf(&b, "  outlier: cell %d, max correlation %.3f\n", o.CellID, o.MaxCorr)
		}
		if s, ok := res.Summary[l]; ok {
			fmt.Fprintf(&b, "  demand: mean %s, peak %s over %s slots\n",
				Rate(s.MeanGbps), Rate(s.PeakGbps), humanize.Comma(int64(s.Slots)))
		}
		e := res.Capacity[l]
		fmt.Fprintf(&b, "  capacity: no buffer %s, with buffer %s, savings %d%%\n",
			Rate(e.NoBuffer), Rate(e.WithBuffer), res.Savings[l])
		if a, ok := res.Assessment[l]; ok && a.RiskLevel != "" {
			fmt.Fprintf(&b, "  risk: %.1f (%s) - %s\n", a.RiskScore, a.RiskLevel, a.Fingerprint)
		}
		events := res.Events[l]
		if maxEvents > 0 && len(events) > maxEvents {
			events = events[:maxEvents]
		}
		for _, ev := range events {
			parts := make([]string, len(ev.Contributors))
			for i, c := range ev.Contributors {
				parts[i] = fmt.Sprintf("cell %d %.1f%%", c.CellID, c.Pct)
			}
			fmt.Fprintf(&b, "  congestion at t=%.4fs (%s): %s\n", ev.Time, Rate(ev.Demand), strings.Join(parts, ", "))
		}
	}
	_, err := io.WriteString(w, b.String())

	return err
}
