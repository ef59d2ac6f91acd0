package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/fronthaul/capacity"
	"github.com/katalvlaran/fronthaul/demand"
	"github.com/katalvlaran/fronthaul/pipeline"
)

func series(agg ...float64) *demand.Series {
	return &demand.Series{Cells: []int{1}, Aggregate: agg, SlotTimes: make([]float64, len(agg)), PerCell: map[int][]float64{1: agg}}
}

func TestRisk(t *testing.T) {
	score, level, reason := pipeline.Risk(nil, 5)
	assert.Zero(t, score)
	assert.Empty(t, level)
	assert.Equal(t, "No traffic", reason)

	// constant demand below capacity: no overflow, no burstiness
	score, level, _ = pipeline.Risk(series(2, 2, 2, 2), 5)
	assert.Zero(t, score)
	assert.Equal(t, "Low", level)

	// half the traffic slots overflow: both overflow terms saturate
	score, level, reason = pipeline.Risk(series(10, 1, 10, 1), 5)
	assert.Equal(t, "High", level)
	assert.Contains(t, reason, "50.0%")
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, score, 70.0)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "No traffic", pipeline.Fingerprint(series(), 1))
	assert.Equal(t, "No congestion", pipeline.Fingerprint(series(1, 2, 3), 5))
	assert.Equal(t, "Switch buffer bottleneck", pipeline.Fingerprint(series(1, 9, 1, 9), 5))
	assert.Equal(t, "Synchronized traffic peaks",
		pipeline.Fingerprint(series(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 9, 9, 9, 9), 5))
}

func TestRecommend(t *testing.T) {
	recs := pipeline.Recommend(2, capacity.Estimate{NoBuffer: 10, WithBuffer: 7.5}, 3, 1)
	assert.Equal(t, []string{"Increase Link 2 from 7.5 Gbps to 10.0 Gbps to keep packet loss ≤1%"}, recs)

	recs = pipeline.Recommend(1, capacity.Estimate{NoBuffer: 5, WithBuffer: 5}, 9, 1)
	assert.Len(t, recs, 1)
	assert.Contains(t, recs[0], "load balancing")

	recs = pipeline.Recommend(3, capacity.Estimate{NoBuffer: 5, WithBuffer: 5}, 2, 1)
	assert.Equal(t, []string{"Link 3 capacity is adequate. No action required."}, recs)
}

func TestStride(t *testing.T) {
	assert.Equal(t, 1, pipeline.Stride(150, 150))
	assert.Equal(t, 2, pipeline.Stride(151, 150))
	assert.Equal(t, 2, pipeline.Stride(300, 150))
	assert.Equal(t, 3, pipeline.Stride(301, 150))
}
