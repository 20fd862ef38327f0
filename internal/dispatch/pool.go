package dispatch

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// PoolStrategy feeds the full volume into a worker pool capped at
// ConcurrencyLimit goroutines. Workers pull continuously, so concurrency
// stays at the limit until the queue drains. Preferred for sustained-load
// measurement.
type PoolStrategy struct{}

func (PoolStrategy) Name() string { return "pool" }

func (PoolStrategy) Execute(ctx context.Context, plan Plan, do DoFunc) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	p := pool.New().WithMaxGoroutines(plan.ConcurrencyLimit)
	for i := 0; i < plan.TotalRequests; i++ {
		p.Go(func() {
			do(ctx, plan.TargetURL)
		})
	}
	p.Wait()

	return nil
}
