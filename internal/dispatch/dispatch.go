// Package dispatch issues the load phase: a fixed volume of requests with a
// hard cap on in-flight concurrency.
package dispatch

import (
	"context"
	"errors"
	"fmt"
)

// Plan describes one dispatch phase. Immutable once constructed.
type Plan struct {
	TotalRequests    int
	ConcurrencyLimit int
	TargetURL        string
}

func (p Plan) Validate() error {
	if p.TotalRequests < 0 {
		return fmt.Errorf("total requests cannot be negative")
	}
	if p.ConcurrencyLimit < 1 {
		return fmt.Errorf("concurrency limit must be at least 1")
	}
	if p.TargetURL == "" {
		return fmt.Errorf("target URL is required")
	}
	return nil
}

// DoFunc performs a single request against url. It must absorb its own
// failures: a request that errors still counts as attempted.
type DoFunc func(ctx context.Context, url string)

// Strategy executes a Plan. Implementations guarantee that do is called
// exactly Plan.TotalRequests times, that no more than ConcurrencyLimit calls
// are in flight at any instant, and that Execute returns only after every
// call has finished.
type Strategy interface {
	Name() string
	Execute(ctx context.Context, plan Plan, do DoFunc) error
}

// ErrUnknownStrategy is a configuration error and fatal before any network
// activity happens.
var ErrUnknownStrategy = errors.New("unknown dispatch strategy")

// Select picks a strategy by name. "auto" prefers the pooled executor, which
// keeps concurrency at the limit until the queue drains; the batch strategy
// dips below the limit near each batch boundary.
func Select(name string) (Strategy, error) {
	switch name {
	case "", "auto", "pool":
		return PoolStrategy{}, nil
	case "batch":
		return BatchStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want auto, pool or batch)", ErrUnknownStrategy, name)
	}
}
