package pipeline

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const metricsNamespace = "fronthaul"

// Option customizes a run.
type Option func(*settings)

type settings struct {
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegisterer registers the run's collectors on reg. Collectors already
// registered by an earlier run are reused.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *settings) {
		s.registerer = reg
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}

	return s
}

// metrics are the collectors a run reports to.
type metrics struct {
	stageSeconds *prometheus.HistogramVec
	capacityGbps *prometheus.GaugeVec
	savingsPct   *prometheus.GaugeVec
	congestion   *prometheus.CounterVec
	scrubbed     prometheus.Counter
	outliers     prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each analysis stage.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
		capacityGbps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "link_capacity_gbps",
			Help:      "Estimated link capacity for the loss bound.",
		}, []string{"link", "model"}),
		savingsPct: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "link_buffer_savings_percent",
			Help:      "Bandwidth saved by buffering, percent of the unbuffered capacity.",
		}, []string{"link"}),
		congestion: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "congestion_events_total",
			Help:      "Congested slots attributed to cells.",
		}, []string{"link"}),
		scrubbed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scrubbed_samples_total",
			Help:      "Throughput samples zeroed as measurement glitches.",
		}),
		outliers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "topology_outliers",
			Help:      "Singleton links flagged as low-confidence assignments.",
		}),
	}
	if reg == nil {
		return m
	}
	m.stageSeconds = register(reg, m.stageSeconds)
	m.capacityGbps = register(reg, m.capacityGbps)
	m.savingsPct = register(reg, m.savingsPct)
	m.congestion = register(reg, m.congestion)
	m.scrubbed = register(reg, m.scrubbed)
	m.outliers = register(reg, m.outliers)

	return m
}

// register adds c to reg, returning the collector already registered under
// the same descriptor if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}

	return c
}

func linkLabel(link int) string {
	return strconv.Itoa(link)
}
