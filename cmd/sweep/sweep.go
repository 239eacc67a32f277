package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/game"
	"github.com/pthm-cable/blobs/telemetry"
)

// SeedResult is the outcome of one headless run.
type SeedResult struct {
	Seed              int64   `csv:"seed"`
	Generations       int     `csv:"generations"`
	Extinct           bool    `csv:"extinct"`
	FinalSurvivalRate float64 `csv:"final_survival_rate"`
	MeanSurvivalRate  float64 `csv:"mean_survival_rate"`
	BestSurvivalRate  float64 `csv:"best_survival_rate"`
	FinalDiversity    int     `csv:"final_diversity"`
	SampleCode        string  `csv:"sample_code"`
}

// Summary aggregates a sweep.
type Summary struct {
	Runs              int
	Extinctions       int
	MeanFinalSurvival float64
	StdFinalSurvival  float64
}

// Sweeper runs the same configuration across many seeds.
type Sweeper struct {
	cfg         *config.Config
	concurrency int
}

// NewSweeper creates a sweeper running at most concurrency seeds at once.
func NewSweeper(cfg *config.Config, concurrency int) *Sweeper {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Sweeper{cfg: cfg, concurrency: concurrency}
}

// Run evaluates every seed and returns the completed results in seed order.
// If ctx is cancelled the seeds that already finished are still returned,
// along with ctx's error.
func (s *Sweeper) Run(ctx context.Context, seeds []int64) ([]SeedResult, error) {
	results := make([]SeedResult, len(seeds))
	errs := make([]error, len(seeds))

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, seed int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx], errs[idx] = s.runSeed(ctx, seed)
		}(i, seed)
	}
	wg.Wait()

	return gather(results, errs, ctx.Err())
}

// gather keeps the results of seeds that completed. Runs stopped by
// cancellation are dropped silently and reported once through interrupted;
// any other failure is returned joined.
func gather(results []SeedResult, errs []error, interrupted error) ([]SeedResult, error) {
	done := make([]SeedResult, 0, len(results))
	var failures []error
	for i, err := range errs {
		switch {
		case err == nil:
			done = append(done, results[i])
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		default:
			failures = append(failures, err)
		}
	}
	if err := errors.Join(failures...); err != nil {
		return done, err
	}
	return done, interrupted
}

// runSeed runs one simulation to completion. Extinction is a result, not an error.
func (s *Sweeper) runSeed(ctx context.Context, seed int64) (res SeedResult, err error) {
	var history []telemetry.GenerationStats
	g := game.NewGame(game.Options{
		Seed:   seed,
		Config: s.cfg,
		StatsCallback: func(st telemetry.GenerationStats) {
			history = append(history, st)
		},
	})
	defer func() {
		if cerr := g.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("seed %d: %w", seed, cerr)
		}
	}()

	runErr := g.Run(ctx, nil)
	if runErr != nil && !errors.Is(runErr, game.ErrExtinct) {
		return SeedResult{Seed: seed}, fmt.Errorf("seed %d: %w", seed, runErr)
	}

	frame := g.Frame()
	res = SeedResult{
		Seed:        seed,
		Generations: frame.Generation,
		Extinct:     errors.Is(runErr, game.ErrExtinct),
		SampleCode:  frame.SampleCode,
	}
	if len(history) > 0 {
		rates := make([]float64, len(history))
		for i, st := range history {
			rates[i] = st.SurvivalRate
			res.BestSurvivalRate = max(res.BestSurvivalRate, st.SurvivalRate)
		}
		last := history[len(history)-1]
		res.FinalSurvivalRate = last.SurvivalRate
		res.FinalDiversity = last.Diversity
		res.MeanSurvivalRate = stat.Mean(rates, nil)
	}
	return res, nil
}

// Summarize aggregates sweep results.
func Summarize(results []SeedResult) Summary {
	sum := Summary{Runs: len(results)}
	if len(results) == 0 {
		return sum
	}

	finals := make([]float64, len(results))
	for i, r := range results {
		finals[i] = r.FinalSurvivalRate
		if r.Extinct {
			sum.Extinctions++
		}
	}
	sum.MeanFinalSurvival = stat.Mean(finals, nil)
	if len(finals) > 1 {
		sum.StdFinalSurvival = stat.StdDev(finals, nil)
	}
	return sum
}
