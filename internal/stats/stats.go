package stats

import (
	"sync/atomic"
)

// Stats holds real-time aggregated counters for a benchmark run.
// All fields are updated with atomics so workers never contend on a lock.
type Stats struct {
	Requests uint64
	Success  uint64
	Fail     uint64
	Bytes    uint64

	inflight int64
}

func New() *Stats {
	return &Stats{}
}

// Add records one terminal request. Every attempt is counted exactly once,
// whether it succeeded, got an error status, or failed at the transport.
func (s *Stats) Add(success bool, bytes int64) {
	atomic.AddUint64(&s.Requests, 1)
	if success {
		atomic.AddUint64(&s.Success, 1)
	} else {
		atomic.AddUint64(&s.Fail, 1)
	}
	if bytes > 0 {
		atomic.AddUint64(&s.Bytes, uint64(bytes))
	}
}

func (s *Stats) IncInflight() {
	atomic.AddInt64(&s.inflight, 1)
}

func (s *Stats) DecInflight() {
	atomic.AddInt64(&s.inflight, -1)
}

func (s *Stats) Inflight() int64 {
	return atomic.LoadInt64(&s.inflight)
}

func (s *Stats) ErrorRate() float64 {
	reqs := atomic.LoadUint64(&s.Requests)
	if reqs == 0 {
		return 0
	}
	fails := atomic.LoadUint64(&s.Fail)
	return (float64(fails) / float64(reqs)) * 100
}

// Snapshot is a cheap copy sent over the update channel to the UI.
type Snapshot struct {
	Requests uint64
	Success  uint64
	Fail     uint64
	Bytes    uint64
	Inflight int64
}

// UpdateChan carries periodic snapshots from the runner to a progress view.
type UpdateChan chan Snapshot

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Requests: atomic.LoadUint64(&s.Requests),
		Success:  atomic.LoadUint64(&s.Success),
		Fail:     atomic.LoadUint64(&s.Fail),
		Bytes:    atomic.LoadUint64(&s.Bytes),
		Inflight: s.Inflight(),
	}
}
