package pipeline_test

import (
	"math/rand"

	"github.com/katalvlaran/fronthaul/config"
	"github.com/katalvlaran/fronthaul/demand"
	"github.com/katalvlaran/fronthaul/pipeline"
	"github.com/katalvlaran/fronthaul/signal"
)

const (
	numCells    = 6
	glitchKbit  = 1e6
	glitchIndex = 100
)

// testConfig groups six cells onto two links with cell 1 anchored to link 2.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.NumCells = numCells
	cfg.Topology.NumLinks = 2
	cfg.Topology.Anchors = []config.Anchor{{Cell: 1, Link: 2}}

	return cfg
}

// synthInput builds odd cells that lose packets together and even cells that
// lose packets together, with independent on/off throughput per cell and one
// glitch sample per cell.
func synthInput(seed int64) pipeline.Input {
	const (
		recordStep = 0.01 // s between slot records
		records    = 2000 // 20 s, 100 buckets
		slots      = 400
	)
	congested := [2]map[int]bool{{}, {}}
	for g := range congested {
		r := rand.New(rand.NewSource(seed + int64(g)))
		for b := 0; b < 100; b++ {
			if r.Float64() < 0.2 {
				congested[g][b] = true
			}
		}
	}

	in := pipeline.Input{
		Throughput:  make(map[int][]signal.ThroughputSample, numCells),
		PacketStats: make(map[int][]signal.SlotRecord, numCells),
	}
	for c := 1; c <= numCells; c++ {
		g := c % 2
		recs := make([]signal.SlotRecord, records)
		for k := range recs {
			ts := float64(k) * recordStep
			rec := signal.SlotRecord{Timestamp: ts, Tx: 10, Rx: 10}
			if congested[g][int(ts/signal.DefaultBucketWidth)] {
				rec.Rx = 8
			}
			recs[k] = rec
		}
		in.PacketStats[c] = recs

		r := rand.New(rand.NewSource(seed*100 + int64(c)))
		on := make([]bool, slots)
		for i := range on {
			on[i] = r.Float64() < 0.6
		}
		kbit := 20 + 10*float64(c)
		samples := make([]signal.ThroughputSample, slots*demand.DefaultSymbolsPerSlot)
		for k := range samples {
			samples[k].Timestamp = float64(k) * demand.DefaultSymbolDuration
			if on[k/demand.DefaultSymbolsPerSlot] {
				samples[k].Kilobits = kbit
			}
		}
		samples[glitchIndex].Kilobits = glitchKbit
		in.Throughput[c] = samples
	}

	return in
}
