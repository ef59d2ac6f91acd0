package capacity

import (
	"errors"
	"math"
)

var (
	// ErrNonFinite indicates a NaN or ±Inf demand value.
	ErrNonFinite = errors.New("capacity: NaN or Inf in demand")

	// ErrLengthMismatch indicates a traffic mask whose length differs from the demand series.
	ErrLengthMismatch = errors.New("capacity: traffic mask length differs from demand")

	// ErrBadLossBound indicates a loss bound outside [0, 100).
	ErrBadLossBound = errors.New("capacity: loss bound must be in [0, 100)")

	// ErrBadParams indicates a non-positive duration or iteration count.
	ErrBadParams = errors.New("capacity: invalid parameters")
)

// Defaults for the O-RAN numerology the engine targets.
const (
	DefaultSlotDuration     = 500e-6
	DefaultBufferDuration   = 4 * 500e-6 / 14 // 4 symbols, ~142.86 µs
	DefaultMaxLossPct       = 1.0
	DefaultIterations       = 50
	DefaultTrafficThreshold = 0.01 // Gbps
	searchHeadroom          = 1.1
)

// Params configures the capacity models.
type Params struct {
	SlotDuration     float64 // seconds
	BufferDuration   float64 // seconds of line rate the buffer holds
	MaxLossPct       float64 // per-cell bound on lossy traffic slots, percent
	Iterations       int     // bisection steps
	TrafficThreshold float64 // Gbps above which a cell carries traffic in a slot
	Workers          int     // links estimated concurrently; <= 0 means 1
}

// DefaultParams returns 500 µs slots, a 4-symbol buffer, a 1 % loss bound and
// 50 bisection steps.
func DefaultParams() Params {
	return Params{
		SlotDuration:     DefaultSlotDuration,
		BufferDuration:   DefaultBufferDuration,
		MaxLossPct:       DefaultMaxLossPct,
		Iterations:       DefaultIterations,
		TrafficThreshold: DefaultTrafficThreshold,
		Workers:          1,
	}
}

func (p Params) validate() error {
	if err := checkLossBound(p.MaxLossPct); err != nil {
		return err
	}
	if !(p.SlotDuration > 0) || !(p.BufferDuration >= 0) || p.Iterations < 1 {
		return ErrBadParams
	}
	if math.IsInf(p.SlotDuration, 0) || math.IsInf(p.BufferDuration, 0) || math.IsNaN(p.TrafficThreshold) {
		return ErrBadParams
	}

	return nil
}

func checkLossBound(pct float64) error {
	if !(pct >= 0 && pct < 100) {
		return ErrBadLossBound
	}

	return nil
}

// Estimate holds both capacity figures of one link, in Gbps.
type Estimate struct {
	NoBuffer   float64
	WithBuffer float64
}
