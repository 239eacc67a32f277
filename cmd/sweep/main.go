// Command sweep runs the headless simulation across many seeds and reports
// how reliably the population learns to reach the surviving half.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/blobs/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 8, "Number of seeds to run")
	firstSeed := flag.Int64("first-seed", 42, "Seed of the first run; later runs add 1000 each")
	concurrency := flag.Int("concurrency", runtime.GOMAXPROCS(0), "Runs executed at once")
	outputDir := flag.String("output", "", "Output directory for sweep.csv (empty = no file)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Each run gets one worker; runs themselves are the parallel unit
	cfg.Derived.Workers = 1

	runSeeds := make([]int64, *seeds)
	for i := range runSeeds {
		runSeeds[i] = *firstSeed + int64(i)*1000
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting sweep",
		"seeds", len(runSeeds),
		"concurrency", *concurrency,
		"generations", cfg.Simulation.Generations,
	)
	start := time.Now()

	results, err := NewSweeper(cfg, *concurrency).Run(ctx, runSeeds)
	switch {
	case errors.Is(err, context.Canceled):
		slog.Info("interrupted", "completed", len(results), "seeds", len(runSeeds))
	case err != nil:
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	for _, r := range results {
		slog.Info("run",
			"seed", r.Seed,
			"generations", r.Generations,
			"extinct", r.Extinct,
			"final_survival_rate", r.FinalSurvivalRate,
			"sample_code", r.SampleCode,
		)
	}

	sum := Summarize(results)
	slog.Info("sweep complete",
		"runs", sum.Runs,
		"extinctions", sum.Extinctions,
		"mean_final_survival", sum.MeanFinalSurvival,
		"std_final_survival", sum.StdFinalSurvival,
		"elapsed", formatDuration(time.Since(start)),
	)

	if *outputDir != "" {
		if err := writeResults(*outputDir, results); err != nil {
			slog.Error("failed to write results", "error", err)
			os.Exit(1)
		}
	}
}

// writeResults saves one CSV row per seed.
func writeResults(dir string, results []SeedResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "sweep.csv"))
	if err != nil {
		return fmt.Errorf("creating sweep.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(results, f); err != nil {
		return fmt.Errorf("writing sweep.csv: %w", err)
	}
	return nil
}
