package bench

import (
	"time"

	"github.com/google/uuid"
)

// minElapsed guards the throughput division when a run completes faster
// than the clock can resolve.
const minElapsed = time.Microsecond

// Result is produced once, after the dispatch phase returns, and is
// immutable from then on.
type Result struct {
	ID        string
	TargetURL string
	Strategy  string
	StartedAt time.Time

	TotalRequests     int
	Success           uint64
	Fail              uint64
	Elapsed           time.Duration
	ElapsedSeconds    float64
	RequestsPerSecond float64
	ThresholdRPS      float64
	Passed            bool
}

// ComputeResult derives throughput and the verdict from a measured dispatch
// phase. Elapsed is clamped to a minimum of one microsecond and the clamped
// value is stored, so recomputing from the stored fields is idempotent.
func ComputeResult(total int, elapsed time.Duration, threshold float64) Result {
	if elapsed < minElapsed {
		elapsed = minElapsed
	}

	secs := elapsed.Seconds()
	rps := float64(total) / secs

	return Result{
		ID:                uuid.New().String(),
		TotalRequests:     total,
		Elapsed:           elapsed,
		ElapsedSeconds:    secs,
		RequestsPerSecond: rps,
		ThresholdRPS:      threshold,
		Passed:            rps >= threshold,
	}
}
