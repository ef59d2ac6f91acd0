package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fronthaul/capacity"
	"github.com/katalvlaran/fronthaul/cluster"
	"github.com/katalvlaran/fronthaul/demand"
	"github.com/katalvlaran/fronthaul/rootcause"
	"github.com/katalvlaran/fronthaul/signal"
	"github.com/katalvlaran/fronthaul/topology"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full set of analysis parameters.
type Config struct {
	NumCells  int             `yaml:"num_cells"`
	Workers   int             `yaml:"workers"` // goroutines per fan-out stage
	Radio     RadioConfig     `yaml:"radio"`
	Signal    SignalConfig    `yaml:"signal"`
	Topology  TopologyConfig  `yaml:"topology"`
	Capacity  CapacityConfig  `yaml:"capacity"`
	RootCause RootCauseConfig `yaml:"root_cause"`
}

// RadioConfig is the O-RAN timing numerology.
type RadioConfig struct {
	SlotDurationUs float64 `yaml:"slot_duration_us"`
	SymbolsPerSlot int     `yaml:"symbols_per_slot"`
	BufferSymbols  float64 `yaml:"buffer_symbols"` // switch buffer depth in symbol times
}

// SignalConfig controls loss-signal bucketing.
type SignalConfig struct {
	BucketWidthSec float64 `yaml:"bucket_width_sec"`
	MaxBuckets     int     `yaml:"max_buckets"`
}

// Anchor pins a cell to a link.
type Anchor struct {
	Cell int `yaml:"cell"`
	Link int `yaml:"link"`
}

// TopologyConfig controls topology inference.
type TopologyConfig struct {
	NumLinks         int      `yaml:"num_links"`
	Anchors          []Anchor `yaml:"anchors"` // first claim on a link wins
	MaxShiftSec      float64  `yaml:"max_shift_sec"`
	ShiftSamples     int      `yaml:"shift_samples"`
	MinOverlap       int      `yaml:"min_overlap_buckets"`
	OutlierThreshold float64  `yaml:"outlier_threshold"`
	Similarity       string   `yaml:"similarity"` // pearson-shift | dtw-band
	Linkage          string   `yaml:"linkage"`    // average | single
}

// CapacityConfig controls demand aggregation and the capacity models.
type CapacityConfig struct {
	MaxLossPct       float64 `yaml:"max_loss_pct"`
	WindowSec        float64 `yaml:"window_sec"` // 0 = whole capture
	Iterations       int     `yaml:"bisect_iterations"`
	TrafficThreshold float64 `yaml:"traffic_threshold_gbps"`
	MaxSymbols       int     `yaml:"max_symbols_per_link"`
}

// RootCauseConfig controls congestion attribution.
type RootCauseConfig struct {
	MaxEvents int `yaml:"max_events_per_link"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		NumCells: 24,
		Workers:  1,
		Radio: RadioConfig{
			SlotDurationUs: 500,
			SymbolsPerSlot: 14,
			BufferSymbols:  4,
		},
		Signal: SignalConfig{BucketWidthSec: signal.DefaultBucketWidth, MaxBuckets: signal.DefaultMaxBuckets},
		Topology: TopologyConfig{
			NumLinks:         topology.DefaultNumLinks,
			Anchors:          []Anchor{{Cell: 1, Link: 2}, {Cell: 2, Link: 3}},
			MaxShiftSec:      topology.DefaultMaxShift,
			ShiftSamples:     topology.DefaultShiftSamples,
			MinOverlap:       topology.DefaultMinOverlap,
			OutlierThreshold: topology.DefaultOutlierThreshold,
			Similarity:       topology.PearsonShift.String(),
			Linkage:          cluster.MethodAverage,
		},
		Capacity: CapacityConfig{
			MaxLossPct:       capacity.DefaultMaxLossPct,
			WindowSec:        demand.DefaultWindow,
			Iterations:       capacity.DefaultIterations,
			TrafficThreshold: capacity.DefaultTrafficThreshold,
			MaxSymbols:       demand.DefaultMaxSymbols,
		},
		RootCause: RootCauseConfig{MaxEvents: rootcause.DefaultMaxEvents},
	}
}

// Load reads a YAML file over Default() and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(bs)
}

// Parse decodes YAML over Default() and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.NumCells < 1:
		return bad("num_cells must be >= 1, got %d", c.NumCells)
	case c.Workers < 0:
		return bad("workers must be >= 0, got %d", c.Workers)
	case !positive(c.Radio.SlotDurationUs):
		return bad("radio.slot_duration_us must be > 0")
	case c.Radio.SymbolsPerSlot < 1:
		return bad("radio.symbols_per_slot must be >= 1")
	case c.Radio.BufferSymbols < 0 || math.IsNaN(c.Radio.BufferSymbols) || math.IsInf(c.Radio.BufferSymbols, 0):
		return bad("radio.buffer_symbols must be >= 0")
	case !positive(c.Signal.BucketWidthSec):
		return bad("signal.bucket_width_sec must be > 0")
	case c.Signal.MaxBuckets < 0:
		return bad("signal.max_buckets must be >= 0")
	case c.Topology.NumLinks < 1:
		return bad("topology.num_links must be >= 1")
	case c.Topology.MaxShiftSec < 0 || math.IsNaN(c.Topology.MaxShiftSec):
		return bad("topology.max_shift_sec must be >= 0")
	case c.Topology.ShiftSamples < 1:
		return bad("topology.shift_samples must be >= 1")
	case c.Topology.MinOverlap < 2:
		return bad("topology.min_overlap_buckets must be >= 2")
	case !(c.Topology.OutlierThreshold >= 0 && c.Topology.OutlierThreshold <= 1):
		return bad("topology.outlier_threshold must be in [0,1]")
	case !(c.Capacity.MaxLossPct > 0 && c.Capacity.MaxLossPct < 100):
		return bad("capacity.max_loss_pct must be in (0,100), got %v", c.Capacity.MaxLossPct)
	case c.Capacity.WindowSec < 0 || math.IsNaN(c.Capacity.WindowSec):
		return bad("capacity.window_sec must be >= 0")
	case c.Capacity.Iterations < 1:
		return bad("capacity.bisect_iterations must be >= 1")
	case c.Capacity.TrafficThreshold < 0 || math.IsNaN(c.Capacity.TrafficThreshold):
		return bad("capacity.traffic_threshold_gbps must be >= 0")
	case c.Capacity.MaxSymbols < 0:
		return bad("capacity.max_symbols_per_link must be >= 0")
	case c.RootCause.MaxEvents < 0:
		return bad("root_cause.max_events_per_link must be >= 0")
	}
	if _, err := topology.ParseSimilarity(c.Topology.Similarity); err != nil {
		return bad("topology.similarity %q", c.Topology.Similarity)
	}
	if _, err := cluster.ByName(c.Topology.Linkage); err != nil {
		return bad("topology.linkage %q", c.Topology.Linkage)
	}
	for i, a := range c.Topology.Anchors {
		if a.Link < 1 || a.Link > c.Topology.NumLinks {
			return bad("topology.anchors[%d]: link %d outside 1..%d", i, a.Link, c.Topology.NumLinks)
		}
		if a.Cell < 1 {
			return bad("topology.anchors[%d]: cell %d must be >= 1", i, a.Cell)
		}
	}

	return nil
}

// SlotDuration returns the slot length in seconds.
func (c Config) SlotDuration() float64 {
	return c.Radio.SlotDurationUs / 1e6
}

// SymbolDuration returns the symbol length in seconds.
func (c Config) SymbolDuration() float64 {
	return c.SlotDuration() / float64(c.Radio.SymbolsPerSlot)
}

// SignalOptions converts the configuration for signal.BuildLossSignals.
func (c Config) SignalOptions() signal.Options {
	return signal.Options{BucketWidth: c.Signal.BucketWidthSec, MaxBuckets: c.Signal.MaxBuckets}
}

// TopologyOptions converts the configuration for topology.Infer.
func (c Config) TopologyOptions() (topology.Options, error) {
	sim, err := topology.ParseSimilarity(c.Topology.Similarity)
	if err != nil {
		return topology.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	clusterer, err := cluster.ByName(c.Topology.Linkage)
	if err != nil {
		return topology.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	anchors := make([]topology.Anchor, len(c.Topology.Anchors))
	for i, a := range c.Topology.Anchors {
		anchors[i] = topology.Anchor{CellID: a.Cell, LinkID: a.Link}
	}

	return topology.Options{
		NumLinks:         c.Topology.NumLinks,
		Anchors:          anchors,
		MaxShift:         c.Topology.MaxShiftSec,
		ShiftSamples:     c.Topology.ShiftSamples,
		MinOverlap:       c.Topology.MinOverlap,
		OutlierThreshold: c.Topology.OutlierThreshold,
		Similarity:       sim,
		Clusterer:        clusterer,
		Workers:          c.Workers,
	}, nil
}

// DemandOptions converts the configuration for demand.Aggregate.
func (c Config) DemandOptions() demand.Options {
	return demand.Options{
		SymbolDuration: c.SymbolDuration(),
		SymbolsPerSlot: c.Radio.SymbolsPerSlot,
		SlotDuration:   c.SlotDuration(),
		Window:         c.Capacity.WindowSec,
		Workers:        c.Workers,
		MaxSymbols:     c.Capacity.MaxSymbols,
	}
}

// CapacityParams converts the configuration for the capacity models.
func (c Config) CapacityParams() capacity.Params {
	return capacity.Params{
		SlotDuration:     c.SlotDuration(),
		BufferDuration:   c.Radio.BufferSymbols * c.SymbolDuration(),
		MaxLossPct:       c.Capacity.MaxLossPct,
		Iterations:       c.Capacity.Iterations,
		TrafficThreshold: c.Capacity.TrafficThreshold,
		Workers:          c.Workers,
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
