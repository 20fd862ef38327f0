package bench

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeResultPass(t *testing.T) {
	res := ComputeResult(5000, 4*time.Second, DefaultThresholdRPS)

	assert.Equal(t, 5000, res.TotalRequests)
	assert.InDelta(t, 4.0, res.ElapsedSeconds, 1e-9)
	assert.InDelta(t, 1250.0, res.RequestsPerSecond, 1e-9)
	assert.True(t, res.Passed)
}

func TestComputeResultFail(t *testing.T) {
	res := ComputeResult(5000, 6*time.Second, DefaultThresholdRPS)

	assert.InDelta(t, 833.333, res.RequestsPerSecond, 0.001)
	assert.False(t, res.Passed)
}

func TestComputeResultExactThresholdPasses(t *testing.T) {
	res := ComputeResult(1000, time.Second, DefaultThresholdRPS)
	assert.InDelta(t, 1000.0, res.RequestsPerSecond, 1e-9)
	assert.True(t, res.Passed)
}

func TestComputeResultDegenerateElapsed(t *testing.T) {
	for _, elapsed := range []time.Duration{0, time.Nanosecond, -time.Second} {
		res := ComputeResult(5000, elapsed, DefaultThresholdRPS)

		assert.Equal(t, minElapsed, res.Elapsed)
		assert.False(t, math.IsNaN(res.RequestsPerSecond), "rps must not be NaN")
		assert.False(t, math.IsInf(res.RequestsPerSecond, 1), "rps must be finite")
		assert.Greater(t, res.RequestsPerSecond, 0.0)
	}
}

func TestComputeResultIdempotent(t *testing.T) {
	res := ComputeResult(5000, 123456*time.Microsecond, DefaultThresholdRPS)

	recomputed := float64(res.TotalRequests) / res.ElapsedSeconds
	assert.Equal(t, res.RequestsPerSecond, recomputed)
}

func TestComputeResultZeroRequests(t *testing.T) {
	res := ComputeResult(0, time.Second, DefaultThresholdRPS)
	assert.Equal(t, 0.0, res.RequestsPerSecond)
	assert.False(t, res.Passed)
}

func TestComputeResultAssignsID(t *testing.T) {
	a := ComputeResult(1, time.Second, 1)
	b := ComputeResult(1, time.Second, 1)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
