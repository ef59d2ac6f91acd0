package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fronthaul/dataset"
)

const testYAML = `num_cells: 4
topology:
  num_links: 2
  anchors:
    - {cell: 1, link: 2}
`

// writeCapture writes a four-cell capture where odd and even cells lose
// packets in disjoint one-second bursts.
func writeCapture(t *testing.T) (dataDir, cfgPath string) {
	t.Helper()
	dir := t.TempDir()
	for c := 1; c <= 4; c++ {
		var pkt bytes.Buffer
		pkt.WriteString("slotStart txPackets rxPackets tooLateRxPackets\n")
		for k := 0; k < 2000; k++ {
			ts := float64(k) * 0.01
			sec := int(ts)
			rx := 10
			if sec%4 == 2*(c%2) {
				rx = 7
			}
			fmt.Fprintf(&pkt, "%.4f 10 %d 0\n", ts, rx)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.PacketStatsFile(c)), pkt.Bytes(), 0o600))

		var tp bytes.Buffer
		for k := 0; k < 14*200; k++ {
			kbit := 0.0
			if (k/14+c)%3 != 0 {
				kbit = 25 * float64(c)
			}
			fmt.Fprintf(&tp, "%.9f %g\n", float64(k)*500e-6/14, kbit)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.ThroughputFile(c)), tp.Bytes(), 0o600))
	}
	cfgPath = filepath.Join(dir, "fronthaul.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testYAML), 0o600))

	return dir, cfgPath
}

func TestRun_EndToEnd(t *testing.T) {
	dir, cfgPath := writeCapture(t)
	out := filepath.Join(t.TempDir(), "result.json")
	prom := filepath.Join(t.TempDir(), "fronthaul.prom")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-data", dir, "-config", cfgPath, "-out", out, "-metrics-file", prom,
		"-multiplier", "1.5", "-log-level", "warn",
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	summary := stdout.String()
	assert.Contains(t, summary, "Cells: 4, links: 2")
	assert.Contains(t, summary, "Link 1:")
	assert.Contains(t, summary, "What-if (multiplier 1.5")

	js, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"capacity_with_buf"`)
	assert.Contains(t, string(js), `"topology"`)

	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "fronthaul_link_capacity_gbps")
}

func TestRun_DumpConfig(t *testing.T) {
	_, cfgPath := writeCapture(t)
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath, "-dump-config"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "num_cells: 4")
	assert.Contains(t, stdout.String(), "num_links: 2")
}

func TestRun_Errors(t *testing.T) {
	dir, cfgPath := writeCapture(t)
	cases := map[string][]string{
		"missing data":      {},
		"bad log level":     {"-data", dir, "-config", cfgPath, "-log-level", "loud"},
		"bad cell factor":   {"-data", dir, "-config", cfgPath, "-cell-multiplier", "7:1.4"},
		"missing directory": {"-data", filepath.Join(dir, "nope"), "-config", cfgPath},
		"missing config":    {"-data", dir, "-config", filepath.Join(dir, "nope.yaml")},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, run(context.Background(), args, &stdout, &stderr))
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	dir, cfgPath := writeCapture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{"-data", dir, "-config", cfgPath}, &stdout, &stderr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseCellFactors(t *testing.T) {
	got, err := parseCellFactors(" 7=1.4, 3=0.8 ")
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{7: 1.4, 3: 0.8}, got)

	got, err = parseCellFactors("")
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"x=1", "1=y", "1"} {
		_, err := parseCellFactors(bad)
		assert.Error(t, err, bad)
	}
	_, err = parseCellFactors("1")
	assert.ErrorContains(t, err, "cell=factor")
}
