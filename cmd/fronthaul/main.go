// Command fronthaul infers the shared-link topology of an O-RAN fronthaul
// capture, sizes every link, and explains its congestion.
//
// Usage:
//
//	fronthaul -data ./capture [-config fronthaul.yaml] [-out result.json]
//	          [-metrics-file fronthaul.prom] [-multiplier 1.4] [-cell-multiplier 7=1.4,3=0.8]
//	          [-log-level info] [-json-logs] [-events 3] [-dump-config]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/fronthaul/config"
	"github.com/katalvlaran/fronthaul/dataset"
	"github.com/katalvlaran/fronthaul/pipeline"
	"github.com/katalvlaran/fronthaul/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "fronthaul:", err)
		}
		os.Exit(1)
	}
}

type options struct {
	dataDir        string
	configPath     string
	outPath        string
	metricsFile    string
	multiplier     float64
	cellMultiplier string
	logLevel       string
	jsonLogs       bool
	events         int
	dumpConfig     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("fronthaul", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.dataDir, "data", "", "directory with throughput-cell-N.dat and pkt-stats-cell-N.dat files")
	fs.StringVar(&o.configPath, "config", "", "YAML configuration overlaid on the defaults")
	fs.StringVar(&o.outPath, "out", "", "write the JSON result to this file (- for stdout)")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format")
	fs.Float64Var(&o.multiplier, "multiplier", 0, "what-if: scale every cell's traffic (0 = no what-if)")
	fs.StringVar(&o.cellMultiplier, "cell-multiplier", "", "what-if: per-cell factors, e.g. 7=1.4,3=0.8")
	fs.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.BoolVar(&o.jsonLogs, "json-logs", false, "emit JSON logs")
	fs.IntVar(&o.events, "events", report.DefaultSummaryEvents, "congestion events listed per link (0 = all)")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "print the effective configuration and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.dataDir == "" && !o.dumpConfig {
		fs.Usage()

		return o, errors.New("-data is required")
	}

	return o, nil
}

func newLogger(level string, jsonLogs bool, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if jsonLogs {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl)), nil
}

// parseCellFactors parses "7=1.4,3=0.8".
func parseCellFactors(s string) (map[int]float64, error) {
	out := map[int]float64{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("cell multiplier %q: want cell=factor", part)
		}
		cell, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("cell multiplier %q: %w", part, err)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("cell multiplier %q: %w", part, err)
		}
		out[cell] = f
	}

	return out, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.dumpConfig {
		bs, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(bs)

		return err
	}
	factors, err := parseCellFactors(o.cellMultiplier)
	if err != nil {
		return err
	}

	logger, err := newLogger(o.logLevel, o.jsonLogs, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("loading capture", zap.String("dir", o.dataDir), zap.Int("cells", cfg.NumCells))
	ds, err := dataset.Load(ctx, o.dataDir, cfg.NumCells, max(1, cfg.Workers))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	opts := []pipeline.Option{pipeline.WithLogger(logger), pipeline.WithRegisterer(reg)}
	in := pipeline.Input{Throughput: ds.Throughput, PacketStats: ds.PacketStats}
	res, err := pipeline.Run(ctx, in, cfg, opts...)
	if err != nil {
		return err
	}
	if err := report.WriteSummary(stdout, res, o.events); err != nil {
		return err
	}

	if o.multiplier != 0 || len(factors) > 0 {
		sc := pipeline.Scenario{Multiplier: o.multiplier, PerCell: factors}
		whatIf, err := pipeline.WhatIf(ctx, res, cfg, sc, pipeline.WithLogger(logger))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nWhat-if (multiplier %g, %d cell overrides):\n", o.multiplier, len(factors))
		if err := report.WriteSummary(stdout, whatIf, o.events); err != nil {
			return err
		}
	}

	if o.outPath != "" {
		if err := writeJSON(o.outPath, stdout, res); err != nil {
			return err
		}
		logger.Info("result written", zap.String("path", o.outPath))
	}
	if o.metricsFile != "" {
		if err := prometheus.WriteToTextfile(o.metricsFile, reg); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		logger.Info("metrics written", zap.String("path", o.metricsFile))
	}

	return nil
}

func writeJSON(path string, stdout io.Writer, res *pipeline.Result) error {
	if path == "-" {
		return report.WriteJSON(stdout, res)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteJSON(f, res); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}
