package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fronthaul/capacity"
	"github.com/katalvlaran/fronthaul/cluster"
	"github.com/katalvlaran/fronthaul/config"
	"github.com/katalvlaran/fronthaul/demand"
	"github.com/katalvlaran/fronthaul/signal"
	"github.com/katalvlaran/fronthaul/topology"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 24, cfg.NumCells)
	assert.InDelta(t, demand.DefaultSymbolDuration, cfg.SymbolDuration(), 1e-18)
	assert.Equal(t, capacity.DefaultParams().MaxLossPct, cfg.CapacityParams().MaxLossPct)
	assert.InDelta(t, capacity.DefaultBufferDuration, cfg.CapacityParams().BufferDuration, 1e-15)
	assert.Equal(t, demand.DefaultOptions().Window, cfg.DemandOptions().Window)
	assert.Equal(t, demand.DefaultMaxSymbols, cfg.DemandOptions().MaxSymbols)
	assert.Equal(t, signal.DefaultOptions(), cfg.SignalOptions())

	opts, err := cfg.TopologyOptions()
	require.NoError(t, err)
	def := topology.DefaultOptions()
	assert.Equal(t, def.Anchors, opts.Anchors)
	assert.Equal(t, def.NumLinks, opts.NumLinks)
	assert.Equal(t, def.MaxShift, opts.MaxShift)
	assert.Equal(t, topology.PearsonShift, opts.Similarity)
	assert.IsType(t, cluster.AverageLinkage{}, opts.Clusterer)
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fronthaul.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
num_cells: 6
workers: 4
topology:
  num_links: 2
  anchors:
    - {cell: 3, link: 1}
  similarity: dtw-band
  linkage: single
capacity:
  max_loss_pct: 0.5
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.NumCells)
	assert.Equal(t, []config.Anchor{{Cell: 3, Link: 1}}, cfg.Topology.Anchors)
	assert.Equal(t, 0.5, cfg.Capacity.MaxLossPct)
	// untouched keys keep their defaults
	assert.Equal(t, 14, cfg.Radio.SymbolsPerSlot)
	assert.Equal(t, config.Default().Signal, cfg.Signal)

	opts, err := cfg.TopologyOptions()
	require.NoError(t, err)
	assert.Equal(t, topology.DTWBand, opts.Similarity)
	assert.IsType(t, cluster.SingleLinkage{}, opts.Clusterer)
	assert.Equal(t, 4, opts.Workers)
}

func TestLoad_EmptyPathAndEmptyFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("bogus_key: 1\n"))
	assert.Error(t, err, "unknown keys are rejected")

	cases := map[string]string{
		"anchor link out of range": "topology:\n  anchors: [{cell: 1, link: 4}]\n",
		"loss bound":               "capacity:\n  max_loss_pct: 100\n",
		"bucket width":             "signal:\n  bucket_width_sec: 0\n",
		"similarity":               "topology:\n  similarity: cosine\n",
		"linkage":                  "topology:\n  linkage: ward\n",
		"symbols":                  "radio:\n  symbols_per_slot: 0\n",
		"max buckets":              "signal:\n  max_buckets: -1\n",
		"max symbols":              "capacity:\n  max_symbols_per_link: -1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Topology.Anchors = append(cfg.Topology.Anchors, config.Anchor{Cell: 9, Link: 1})
	bs, err := cfg.Marshal()
	require.NoError(t, err)

	back, err := config.Parse(bs)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
