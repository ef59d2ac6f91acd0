package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fronthaul/signal"
)

// ErrMalformed indicates a record that cannot be parsed or violates the format.
var ErrMalformed = errors.New("dataset: malformed record")

const maxLineBytes = 1 << 20

// ThroughputFile returns the throughput file name of a cell.
func ThroughputFile(cell int) string {
	return fmt.Sprintf("throughput-cell-%d.dat", cell)
}

// PacketStatsFile returns the packet-statistics file name of a cell.
func PacketStatsFile(cell int) string {
	return fmt.Sprintf("pkt-stats-cell-%d.dat", cell)
}

// Dataset holds the raw captures of cells 1..N.
type Dataset struct {
	Cells       []int
	Throughput  map[int][]signal.ThroughputSample
	PacketStats map[int][]signal.SlotRecord
}

// Load reads both files of cells 1..numCells from dir, up to workers files at
// a time (<= 0 means one). A missing or malformed file fails the whole load.
func Load(ctx context.Context, dir string, numCells, workers int) (*Dataset, error) {
	if numCells < 1 {
		return nil, fmt.Errorf("dataset: need at least one cell, got %d", numCells)
	}
	if workers < 1 {
		workers = 1
	}
	tp := make([][]signal.ThroughputSample, numCells)
	ps := make([][]signal.SlotRecord, numCells)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < numCells; i++ {
		cell := i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := readFile(filepath.Join(dir, ThroughputFile(cell)), ReadThroughput)
			if err != nil {
				return err
			}
			tp[i] = s

			return nil
		})
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := readFile(filepath.Join(dir, PacketStatsFile(cell)), ReadPacketStats)
			if err != nil {
				return err
			}
			ps[i] = r

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{
		Cells:       make([]int, numCells),
		Throughput:  make(map[int][]signal.ThroughputSample, numCells),
		PacketStats: make(map[int][]signal.SlotRecord, numCells),
	}
	for i := 0; i < numCells; i++ {
		ds.Cells[i] = i + 1
		ds.Throughput[i+1] = tp[i]
		ds.PacketStats[i+1] = ps[i]
	}

	return ds, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return out, nil
}

// ReadThroughput parses "<timestamp> <kilobits>" lines. Blank lines are skipped.
func ReadThroughput(r io.Reader) ([]signal.ThroughputSample, error) {
	var out []signal.ThroughputSample
	err := scanLines(r, false, func(line int, f []string) error {
		if len(f) < 2 {
			return malformed(line, "want 2 fields, got %d", len(f))
		}
		ts, err := parseFloat(line, f[0])
		if err != nil {
			return err
		}
		kb, err := parseFloat(line, f[1])
		if err != nil {
			return err
		}
		out = append(out, signal.ThroughputSample{Timestamp: ts, Kilobits: kb})

		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })

	return out, nil
}

// ReadPacketStats skips the header line and parses
// "<slot_start> <tx> <rx> <too_late_rx>" lines.
func ReadPacketStats(r io.Reader) ([]signal.SlotRecord, error) {
	var out []signal.SlotRecord
	err := scanLines(r, true, func(line int, f []string) error {
		if len(f) < 4 {
			return malformed(line, "want 4 fields, got %d", len(f))
		}
		ts, err := parseFloat(line, f[0])
		if err != nil {
			return err
		}
		var counts [3]int64
		for k := range counts {
			n, err := strconv.ParseInt(f[k+1], 10, 64)
			if err != nil {
				return malformed(line, "counter %q: %v", f[k+1], err)
			}
			if n < 0 {
				return malformed(line, "negative counter %d", n)
			}
			counts[k] = n
		}
		out = append(out, signal.SlotRecord{Timestamp: ts, Tx: counts[0], Rx: counts[1], LateRx: counts[2]})

		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })

	return out, nil
}

func scanLines(r io.Reader, skipHeader bool, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		if skipHeader && line == 1 {
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if err := fn(line, fields); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("dataset: line %d: %w", line+1, err)
	}

	return nil
}

func parseFloat(line int, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed(line, "number %q: %v", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, malformed(line, "non-finite value %q", s)
	}

	return v, nil
}

func malformed(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, line, fmt.Sprintf(format, args...))
}
