// Package report renders run headers, results and fatal errors to stdout.
package report

import (
	"errors"
	"fmt"
	"strings"

	"kantarabench/internal/bench"
	"kantarabench/internal/probe"
	"kantarabench/internal/tui/styles"
)

const rule = "======================================================================"

// PrintHeader echoes the effective configuration before the run starts.
func PrintHeader(cfg bench.Config, strategy string) {
	fmt.Println()
	fmt.Println(styles.Title.Render("KANTARA BENCHMARK"))
	fmt.Println(rule)
	target := cfg.URL
	if target == "" {
		target = fmt.Sprintf("auto-discover on %s (primary %d, candidates %v)", cfg.Host, cfg.PrimaryPort, cfg.CandidatePorts)
	}
	fmt.Printf("Target      : %s\n", target)
	fmt.Printf("Requests    : %d (warm-up %d)\n", cfg.TotalRequests, cfg.WarmupRequests)
	fmt.Printf("Connections : %d\n", cfg.Connections)
	fmt.Printf("Threads     : %s\n", threadsLabel(cfg.Threads))
	fmt.Printf("Duration    : %ds (reported only; the run goes to completion)\n", cfg.DurationSec)
	fmt.Printf("Strategy    : %s\n", strategy)
	fmt.Printf("Threshold   : %.0f req/s\n", cfg.ThresholdRPS)
	fmt.Println(rule)
	fmt.Println()
}

func threadsLabel(threads int) string {
	if threads <= 0 {
		return "runtime default"
	}
	return fmt.Sprintf("%d", threads)
}

// PrintResult renders the summary and the verdict. A missed threshold is a
// result, not a process error.
func PrintResult(res bench.Result) {
	fmt.Println()
	fmt.Println(styles.Title.Render("RESULTS"))
	fmt.Println(rule)
	fmt.Printf("Run ID      : %s\n", res.ID)
	fmt.Printf("Target      : %s\n", res.TargetURL)
	fmt.Printf("Strategy    : %s\n", res.Strategy)
	fmt.Printf("Requests    : %d (ok %d, failed %d)\n", res.TotalRequests, res.Success, res.Fail)
	fmt.Printf("Elapsed     : %.3fs\n", res.ElapsedSeconds)
	fmt.Printf("Throughput  : %s\n", throughputLine(res))
	fmt.Println(rule)

	if res.Passed {
		fmt.Printf("%s  sustained %.2f req/s (threshold %.0f)\n",
			styles.PassBadge.Render("PASS"), res.RequestsPerSecond, res.ThresholdRPS)
	} else {
		fmt.Printf("%s  only %.2f req/s, below the %.0f req/s threshold\n",
			styles.FailBadge.Render("FAIL"), res.RequestsPerSecond, res.ThresholdRPS)
	}
	fmt.Println()
}

func throughputLine(res bench.Result) string {
	line := fmt.Sprintf("%.2f req/s", res.RequestsPerSecond)
	if res.Passed {
		return styles.Active.Render(line)
	}
	return styles.Error.Render(line)
}

// PrintFatal renders a fatal error with remediation guidance. The caller
// exits non-zero.
func PrintFatal(err error) {
	fmt.Println()
	fmt.Println(styles.Error.Render("✗ " + strings.TrimSpace(err.Error())))
	if errors.Is(err, probe.ErrTargetNotFound) {
		fmt.Println(styles.Subtle.Render("  Is the server running? Start it with 'kantarabench serve' or pass --url."))
	}
	fmt.Println()
}
