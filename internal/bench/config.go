package bench

import (
	"fmt"

	"kantarabench/internal/probe"
)

// Defaults match the benchmark contract: 5000 requests at 100 concurrent
// against a 1000 req/s threshold, with 10 warm-up requests.
const (
	DefaultTotalRequests  = 5000
	DefaultConnections    = 100
	DefaultWarmupRequests = 10
	DefaultThresholdRPS   = 1000
	DefaultTimeoutSec     = 10
	DefaultDurationSec    = 10
)

// Config is parsed once at process start and treated as immutable.
type Config struct {
	// URL, when set, skips discovery and benchmarks it directly. When
	// empty, the locator scans Host's candidate ports.
	URL  string
	Host string

	// DurationSec is accepted and reported but does not cut off the
	// dispatch phase: once dispatch starts it runs to completion.
	DurationSec int
	Connections int
	Threads     int

	TotalRequests  int
	WarmupRequests int
	TimeoutSec     int
	ThresholdRPS   float64
	Strategy       string

	PrimaryPort    int
	CandidatePorts []int
}

// NewConfig returns a Config with every field at its default.
func NewConfig() Config {
	return Config{
		Host:           "localhost",
		DurationSec:    DefaultDurationSec,
		Connections:    DefaultConnections,
		TotalRequests:  DefaultTotalRequests,
		WarmupRequests: DefaultWarmupRequests,
		TimeoutSec:     DefaultTimeoutSec,
		ThresholdRPS:   DefaultThresholdRPS,
		Strategy:       "auto",
		PrimaryPort:    probe.DefaultPrimaryPort,
		CandidatePorts: probe.DefaultCandidates,
	}
}

func (c Config) Validate() error {
	if c.URL == "" && c.Host == "" {
		return fmt.Errorf("either a target URL or a host to scan is required")
	}
	if c.Connections < 1 {
		return fmt.Errorf("connections must be at least 1")
	}
	if c.TotalRequests < 0 {
		return fmt.Errorf("total requests cannot be negative")
	}
	if c.WarmupRequests < 0 {
		return fmt.Errorf("warm-up requests cannot be negative")
	}
	if c.TimeoutSec < 1 {
		return fmt.Errorf("timeout must be at least 1 second")
	}
	if c.ThresholdRPS <= 0 {
		return fmt.Errorf("threshold must be positive")
	}
	if c.DurationSec < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads cannot be negative")
	}
	return nil
}
