package dispatch

import (
	"context"
	"sync"
)

// BatchStrategy partitions the volume into sequential batches of
// ConcurrencyLimit requests. A batch is launched all at once and joined
// before the next one starts, so the in-flight count never exceeds the
// limit. Always available fallback.
type BatchStrategy struct{}

func (BatchStrategy) Name() string { return "batch" }

func (BatchStrategy) Execute(ctx context.Context, plan Plan, do DoFunc) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	for offset := 0; offset < plan.TotalRequests; offset += plan.ConcurrencyLimit {
		size := plan.ConcurrencyLimit
		if remaining := plan.TotalRequests - offset; remaining < size {
			size = remaining
		}

		var wg sync.WaitGroup
		wg.Add(size)
		for i := 0; i < size; i++ {
			go func() {
				defer wg.Done()
				do(ctx, plan.TargetURL)
			}()
		}
		wg.Wait()
	}

	return nil
}
