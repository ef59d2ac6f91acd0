package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/katalvlaran/fronthaul/pipeline"
)

// ErrNonFinite indicates a NaN or ±Inf value in a result.
var ErrNonFinite = errors.New("report: non-finite value")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the serialized form of a result.
type Document struct {
	Topology              map[string][]int        `json:"topology"`
	CapacityNoBuf         map[string]float64      `json:"capacity_no_buf"`
	CapacityWithBuf       map[string]float64      `json:"capacity_with_buf"`
	BandwidthSavingsPct   map[string]int          `json:"bandwidth_savings_pct"`
	RiskScores            map[string]Risk         `json:"risk_scores"`
	Recommendations       map[string][]string     `json:"recommendations"`
	CongestionFingerprint map[string]string       `json:"congestion_fingerprint"`
	TopologyConfidence    map[string]int          `json:"topology_confidence"`
	RootCause             map[string][]Event      `json:"root_cause_attribution"`
	Outliers              []Outlier               `json:"outliers"`
	TrafficSummary        map[string]Traffic      `json:"traffic_summary"`
	CorrelationMatrix     *Correlation            `json:"correlation_matrix"`
	LossOverTime          map[string]LossTimeline `json:"loss_correlation_over_time"`
	Scrubbed              map[string]int          `json:"scrubbed_samples"`
}

// Risk is a link's congestion risk.
type Risk struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Contributor is one cell's share of a congested slot.
type Contributor struct {
	CellID int     `json:"cell_id"`
	Pct    float64 `json:"pct"`
}

// Event is one congested slot.
type Event struct {
	TimeSec      float64       `json:"time_sec"`
	DemandGbps   float64       `json:"demand_gbps"`
	Contributors []Contributor `json:"contributors"`
}

// Outlier is a low-confidence singleton link.
type Outlier struct {
	LinkID         string  `json:"link_id"`
	CellID         int     `json:"cell_id"`
	MaxCorrelation float64 `json:"max_correlation"`
}

// Traffic is a link's demand sparkline and summary figures.
type Traffic struct {
	TimeSec    []float64 `json:"time_sec"`
	DemandGbps []float64 `json:"demand_gbps"`
	MeanGbps   float64   `json:"mean_gbps"`
	PeakGbps   float64   `json:"peak_gbps"`
	Slots      int       `json:"slots"`
}

// Correlation is the pairwise similarity matrix and its cell ordering.
type Correlation struct {
	Cells  []int       `json:"cells"`
	Matrix [][]float64 `json:"matrix"`
}

// LossTimeline is the loss fraction over time of a link's cells.
type LossTimeline struct {
	TimeSec []float64            `json:"time_sec"`
	Cells   map[string][]float64 `json:"cells"`
}

// checker records the first non-finite value it is shown.
type checker struct{ err error }

func (c *checker) round(v float64, digits int, where string) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if c.err == nil {
			c.err = fmt.Errorf("%s: %w", where, ErrNonFinite)
		}

		return 0
	}
	p := math.Pow(10, float64(digits))

	return math.Round(v*p) / p
}

func (c *checker) roundAll(vs []float64, digits int, where string) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = c.round(v, digits, where)
	}

	return out
}

func key(id int) string {
	return strconv.Itoa(id)
}

// Build converts res into a Document.
func Build(res *pipeline.Result) (*Document, error) {
	if res == nil {
		return nil, errors.New("report: nil result")
	}
	var c checker
	d := &Document{
		Topology:              make(map[string][]int, len(res.Topology)),
		CapacityNoBuf:         make(map[string]float64, len(res.Capacity)),
		CapacityWithBuf:       make(map[string]float64, len(res.Capacity)),
		BandwidthSavingsPct:   make(map[string]int, len(res.Savings)),
		RiskScores:            make(map[string]Risk, len(res.Assessment)),
		Recommendations:       make(map[string][]string, len(res.Assessment)),
		CongestionFingerprint: make(map[string]string, len(res.Assessment)),
		TopologyConfidence:    make(map[string]int, len(res.Confidence)),
		RootCause:             make(map[string][]Event, len(res.Events)),
		Outliers:              []Outlier{},
		TrafficSummary:        make(map[string]Traffic, len(res.Summary)),
		LossOverTime:          make(map[string]LossTimeline, len(res.Timeline)),
		Scrubbed:              make(map[string]int, len(res.Scrubbed)),
	}

	for l, cells := range res.Topology {
		d.Topology[key(l)] = append([]int{}, cells...)
	}
	for l, e := range res.Capacity {
		d.CapacityNoBuf[key(l)] = c.round(e.NoBuffer, 2, "capacity_no_buf")
		d.CapacityWithBuf[key(l)] = c.round(e.WithBuffer, 2, "capacity_with_buf")
	}
	for l, s := range res.Savings {
		d.BandwidthSavingsPct[key(l)] = s
	}
	for l, a := range res.Assessment {
		reason := a.Reason
		if a.RiskLevel != "" {
			reason = a.RiskLevel + ": " + a.Reason
		}
		d.RiskScores[key(l)] = Risk{Score: c.round(a.RiskScore, 1, "risk_scores"), Reason: reason}
		d.Recommendations[key(l)] = append([]string{}, a.Recommendations...)
		d.CongestionFingerprint[key(l)] = a.Fingerprint
	}
	for l, v := range res.Confidence {
		d.TopologyConfidence[key(l)] = v
	}
	for l, evs := range res.Events {
		out := make([]Event, len(evs))
		for i, ev := range evs {
			out[i] = Event{
				TimeSec:      c.round(ev.Time, 2, "root_cause_attribution"),
				DemandGbps:   c.round(ev.Demand, 2, "root_cause_attribution"),
				Contributors: make([]Contributor, len(ev.Contributors)),
			}
			for j, ct := range ev.Contributors {
				out[i].Contributors[j] = Contributor{CellID: ct.CellID, Pct: c.round(ct.Pct, 1, "root_cause_attribution")}
			}
		}
		d.RootCause[key(l)] = out
	}

	links := make([]int, 0, len(res.Outliers))
	for l := range res.Outliers {
		links = append(links, l)
	}
	sort.Ints(links)
	for _, l := range links {
		o := res.Outliers[l]
		d.Outliers = append(d.Outliers, Outlier{LinkID: key(l), CellID: o.CellID, MaxCorrelation: c.round(o.MaxCorr, 4, "outliers")})
	}

	for l, s := range res.Summary {
		d.TrafficSummary[key(l)] = Traffic{
			TimeSec:    c.roundAll(s.Times, 2, "traffic_summary"),
			DemandGbps: c.roundAll(s.Demand, 2, "traffic_summary"),
			MeanGbps:   c.round(s.MeanGbps, 3, "traffic_summary"),
			PeakGbps:   c.round(s.PeakGbps, 3, "traffic_summary"),
			Slots:      s.Slots,
		}
	}

	if res.Correlation != nil && res.Correlation.Size() > 0 {
		raw := res.Correlation.Dense().Raw()
		m := &Correlation{Cells: res.Correlation.IDs(), Matrix: make([][]float64, len(raw))}
		for i, row := range raw {
			m.Matrix[i] = c.roundAll(row, 4, "correlation_matrix")
		}
		d.CorrelationMatrix = m
	}

	for l, tl := range res.Timeline {
		out := LossTimeline{TimeSec: c.roundAll(tl.Times, 2, "loss_correlation_over_time"), Cells: make(map[string][]float64, len(tl.Cells))}
		for cid, v := range tl.Cells {
			out.Cells[key(cid)] = c.roundAll(v, 3, "loss_correlation_over_time")
		}
		d.LossOverTime[key(l)] = out
	}

	for cid, n := range res.Scrubbed {
		d.Scrubbed[key(cid)] = n
	}

	if c.err != nil {
		return nil, c.err
	}

	return d, nil
}

// Marshal builds and encodes res as indented JSON.
func Marshal(res *pipeline.Result) ([]byte, error) {
	d, err := Build(res)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(d, "", "  ")
}

// WriteJSON builds and encodes res to w.
func WriteJSON(w io.Writer, res *pipeline.Result) error {
	d, err := Build(res)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(d)
}
