package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kantarabench/internal/banner"
	"kantarabench/internal/bench"
	"kantarabench/internal/cli"
	"kantarabench/internal/report"
	"kantarabench/internal/stats"
	"kantarabench/internal/tui/live"
)

var (
	cfgFile string

	// CLI Flags
	url        string
	duration   int
	conns      int
	threads    int
	requests   int
	warmup     int
	timeoutSec int
	threshold  float64
	strategy   string
	noTUI      bool
)

var rootCmd = &cobra.Command{
	Use:   "kantarabench",
	Short: "Kantara Benchmark - throughput validation for the Kantara proxy",
	Long: `
kantarabench validates that an HTTP service sustains a minimum throughput.

It finds the target among the candidate ports (or takes --url), warms it
up, fires a fixed volume of GET requests at bounded concurrency, and
reports achieved requests/second against the pass threshold.

A missed threshold is reported as FAIL but still exits 0; only fatal
errors (target not found, bad flags) exit 1.`,
	Run: func(cmd *cobra.Command, args []string) {
		runBench()
	},
}

func Execute() {
	// Custom Help with Banner
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kantarabench.yaml)")

	rootCmd.Flags().StringVarP(&url, "url", "u", "", "Target URL (skips port discovery)")
	rootCmd.Flags().IntVarP(&duration, "duration", "d", bench.DefaultDurationSec, "Duration in seconds (reported only)")
	rootCmd.Flags().IntVarP(&conns, "connections", "c", bench.DefaultConnections, "Max concurrent connections")
	rootCmd.Flags().IntVarP(&threads, "threads", "t", 0, "OS thread cap (GOMAXPROCS, 0 = runtime default)")
	rootCmd.Flags().IntVarP(&requests, "requests", "n", bench.DefaultTotalRequests, "Total number of requests")
	rootCmd.Flags().IntVar(&warmup, "warmup", bench.DefaultWarmupRequests, "Warm-up requests before measurement")
	rootCmd.Flags().IntVar(&timeoutSec, "timeout", bench.DefaultTimeoutSec, "Per-request timeout in seconds")
	rootCmd.Flags().Float64Var(&threshold, "threshold", bench.DefaultThresholdRPS, "Pass threshold in requests/second")
	rootCmd.Flags().StringVar(&strategy, "strategy", "auto", "Dispatch strategy: auto, pool or batch")
	rootCmd.Flags().BoolVar(&noTUI, "no-tui", false, "Disable the live progress view")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".kantarabench")
		}
	}
	viper.SetEnvPrefix("KANTARABENCH")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

func buildConfig() bench.Config {
	cfg := bench.NewConfig()
	cfg.URL = url
	if cfg.URL == "" {
		cfg.URL = viper.GetString("url")
	}
	cfg.DurationSec = duration
	cfg.Connections = conns
	cfg.Threads = threads
	cfg.TotalRequests = requests
	cfg.WarmupRequests = warmup
	cfg.TimeoutSec = timeoutSec
	cfg.ThresholdRPS = threshold
	cfg.Strategy = strategy
	return cfg
}

func runBench() {
	cfg := buildConfig()

	if cfg.Threads > 0 {
		runtime.GOMAXPROCS(cfg.Threads)
	}

	interactive := !noTUI && isatty.IsTerminal(os.Stdout.Fd())

	var err error
	if interactive {
		err = runLive(cfg)
	} else {
		_, err = cli.Start(cfg)
	}

	if err != nil {
		report.PrintFatal(err)
		os.Exit(1)
	}
}

// runLive drives the benchmark behind a bubbletea progress view and prints
// the summary once the view closes.
func runLive(cfg bench.Config) error {
	updates := make(stats.UpdateChan, 100)
	r, err := bench.NewRunner(cfg, updates)
	if err != nil {
		return err
	}

	target, err := r.ResolveTarget(context.Background())
	if err != nil {
		return err
	}
	cfg.URL = target
	r.Cfg.URL = target

	report.PrintHeader(cfg, r.Strategy.Name())

	p := tea.NewProgram(live.NewModel(cfg.TotalRequests, target))

	go func() {
		for snap := range updates {
			p.Send(snap)
		}
	}()

	type outcome struct {
		res bench.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, rerr := r.Run(context.Background())
		done <- outcome{res, rerr}
		p.Send(live.DoneMsg{Result: res, Err: rerr})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("progress view failed: %w", err)
	}

	o := <-done
	if o.err != nil {
		return o.err
	}

	report.PrintResult(o.res)
	return nil
}
