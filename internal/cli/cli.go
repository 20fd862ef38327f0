// Package cli runs the benchmark headless, for CI and non-TTY output.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kantarabench/internal/bench"
	"kantarabench/internal/report"
	"kantarabench/internal/stats"
)

// Start runs the full benchmark flow with a single-line progress monitor.
// It returns the result, or the fatal error that stopped the run before
// dispatch (target not found, bad configuration).
func Start(cfg bench.Config) (bench.Result, error) {
	updates := make(stats.UpdateChan, 100)
	r, err := bench.NewRunner(cfg, updates)
	if err != nil {
		return bench.Result{}, err
	}

	report.PrintHeader(cfg, r.Strategy.Name())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type outcome struct {
		res bench.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run(ctx)
		done <- outcome{res, err}
	}()

	start := time.Now()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-updates:
			// Drain; the ticker owns the redraw cadence.
		case <-ticker.C:
			printProgress(r.Stats.Snapshot(), cfg.TotalRequests, time.Since(start))
		case o := <-done:
			if o.err != nil {
				fmt.Println()
				return bench.Result{}, o.err
			}
			printProgress(r.Stats.Snapshot(), cfg.TotalRequests, time.Since(start))
			fmt.Println()
			report.PrintResult(o.res)
			return o.res, nil
		}
	}
}

func printProgress(snap stats.Snapshot, total int, elapsed time.Duration) {
	pct := 0.0
	if total > 0 {
		pct = float64(snap.Requests) / float64(total)
	}
	if pct > 1.0 {
		pct = 1.0
	}

	rps := 0.0
	if elapsed.Seconds() > 0 {
		rps = float64(snap.Requests) / elapsed.Seconds()
	}

	fmt.Printf("\r%s %3.0f%% | %d/%d | Inf: %3d | RPS: %.1f | OK: %d | Err: %d   ",
		progressBar(pct, 20), pct*100,
		snap.Requests, total,
		snap.Inflight,
		rps,
		snap.Success,
		snap.Fail,
	)
}

func progressBar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("-", width-filled) + "]"
}
