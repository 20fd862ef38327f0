package bench

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"kantarabench/internal/dispatch"
	"kantarabench/internal/probe"
	"kantarabench/internal/stats"
)

// Runner drives one benchmark: locate target, warm up, dispatch the timed
// load, compute the result. The outer flow is strictly sequential; only the
// dispatch phase fans out.
type Runner struct {
	Cfg      Config
	Stats    *stats.Stats
	Client   *http.Client
	Updates  stats.UpdateChan
	Strategy dispatch.Strategy
}

func NewRunner(cfg Config, updates stats.UpdateChan) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	strategy, err := dispatch.Select(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = cfg.Connections
	t.MaxConnsPerHost = cfg.Connections
	t.MaxIdleConnsPerHost = cfg.Connections

	client := &http.Client{
		Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
		Transport: t,
	}

	if updates == nil {
		updates = make(stats.UpdateChan, 10)
	}

	return &Runner{
		Cfg:      cfg,
		Stats:    stats.New(),
		Client:   client,
		Updates:  updates,
		Strategy: strategy,
	}, nil
}

// ResolveTarget returns the URL to benchmark. An explicit URL wins;
// otherwise the locator scans the configured ports.
func (r *Runner) ResolveTarget(ctx context.Context) (string, error) {
	if r.Cfg.URL != "" {
		return r.Cfg.URL, nil
	}

	l := probe.NewLocator(r.Cfg.Host)
	if r.Cfg.PrimaryPort > 0 {
		l.Primary = r.Cfg.PrimaryPort
	}
	if len(r.Cfg.CandidatePorts) > 0 {
		l.Candidates = r.Cfg.CandidatePorts
	}

	port, err := l.Locate(ctx)
	if err != nil {
		return "", err
	}
	return l.URL(port), nil
}

// Run executes the whole benchmark flow and returns the computed result.
// Only discovery failures are errors; per-request failures land in the
// fail counter and the result is produced regardless.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	target, err := r.ResolveTarget(ctx)
	if err != nil {
		return Result{}, err
	}

	Warmup(ctx, r.Client, target, r.Cfg.WarmupRequests)

	r.StartTickLoop(ctx, 200*time.Millisecond)

	plan := dispatch.Plan{
		TotalRequests:    r.Cfg.TotalRequests,
		ConcurrencyLimit: r.Cfg.Connections,
		TargetURL:        target,
	}

	start := time.Now()
	if err := r.Strategy.Execute(ctx, plan, r.doRequest); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	r.sendUpdate()

	res := ComputeResult(plan.TotalRequests, elapsed, r.Cfg.ThresholdRPS)
	res.TargetURL = target
	res.Strategy = r.Strategy.Name()
	res.StartedAt = start
	res.Success = r.Stats.Success
	res.Fail = r.Stats.Fail
	return res, nil
}

// doRequest performs one GET. Transport errors and error statuses both
// count as attempted; nothing is retried and nothing aborts the dispatcher.
func (r *Runner) doRequest(ctx context.Context, url string) {
	r.Stats.IncInflight()
	defer r.Stats.DecInflight()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.Stats.Add(false, 0)
		return
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		r.Stats.Add(false, 0)
		return
	}

	n, _ := io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	r.Stats.Add(ok, n)
}

// StartTickLoop pushes periodic snapshots for progress views.
func (r *Runner) StartTickLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sendUpdate()
			}
		}
	}()
}

func (r *Runner) sendUpdate() {
	// Non-blocking send; a stalled view must not slow the workers.
	select {
	case r.Updates <- r.Stats.Snapshot():
	default:
	}
}
