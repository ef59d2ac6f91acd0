package pipeline

import (
	"errors"

	"github.com/katalvlaran/fronthaul/capacity"
	"github.com/katalvlaran/fronthaul/demand"
	"github.com/katalvlaran/fronthaul/matrix"
	"github.com/katalvlaran/fronthaul/rootcause"
	"github.com/katalvlaran/fronthaul/signal"
	"github.com/katalvlaran/fronthaul/topology"
)

var (
	// ErrNoInput indicates that no packet statistics were supplied.
	ErrNoInput = errors.New("pipeline: no packet statistics")

	// ErrNilResult indicates a WhatIf call without a base result.
	ErrNilResult = errors.New("pipeline: nil base result")

	// ErrBadScenario indicates a negative or non-finite traffic multiplier.
	ErrBadScenario = errors.New("pipeline: invalid what-if scenario")

	// ErrNonFinite indicates a NaN or ±Inf value in a computed output.
	ErrNonFinite = errors.New("pipeline: non-finite value in result")
)

// Down-sampling limits of the visualization series.
const (
	maxSummaryPoints  = 100
	maxTimelinePoints = 150
)

// Input is the raw capture of every cell.
type Input struct {
	Throughput  map[int][]signal.ThroughputSample
	PacketStats map[int][]signal.SlotRecord
}

// Result is everything one analysis run derives.
type Result struct {
	Cells       []int
	Grid        signal.Grid
	Scrubbed    map[int]int // cell -> zeroed throughput samples
	Topology    topology.Topology
	Correlation *matrix.Symmetric
	Confidence  map[int]int
	Outliers    map[int]topology.Outlier

	Demand     map[int]*demand.Series
	Capacity   map[int]capacity.Estimate
	Savings    map[int]int // link -> % bandwidth saved by buffering
	Events     map[int][]rootcause.Event
	Summary    map[int]LinkSummary
	Assessment map[int]Assessment
	Timeline   map[int]LossTimeline
}

// LinkSummary describes a link's demand with a down-sampled sparkline.
type LinkSummary struct {
	Slots    int
	MeanGbps float64
	PeakGbps float64
	Times    []float64 // at most 100 points
	Demand   []float64
}

// Assessment is the operator-facing verdict on a link.
type Assessment struct {
	RiskScore       float64 // 0..100, one decimal
	RiskLevel       string  // Low | Medium | High, empty without traffic
	Reason          string
	Fingerprint     string
	Recommendations []string
}

// LossTimeline is the down-sampled loss fraction of a link's cells.
type LossTimeline struct {
	Times []float64         // bucket start times, at most 150 points
	Cells map[int][]float64 // cell id -> loss fraction at Times
}

// Scenario scales cell traffic for a what-if run. Cell c is scaled by
// Multiplier × PerCell[c]; a zero Multiplier means 1 and cells missing from
// PerCell use 1.
type Scenario struct {
	Multiplier float64
	PerCell    map[int]float64
}
