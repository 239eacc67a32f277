package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/neural"
	"github.com/pthm-cable/blobs/systems"
	"github.com/pthm-cable/blobs/telemetry"
)

// testConfig returns a small configuration for fast runs.
func testConfig(popCap, steps, generations, workers, threshold int) *config.Config {
	cfg := config.Default()
	cfg.Population.Cap = popCap
	cfg.Simulation.StepsPerGeneration = steps
	cfg.Simulation.Generations = generations
	cfg.Parallel.Workers = workers
	cfg.Parallel.Threshold = threshold
	cfg.Derived.Workers = workers
	cfg.Telemetry.PerfWindow = 16
	return cfg
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g := NewGame(opts)
	t.Cleanup(func() {
		if err := g.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return g
}

func TestGameCompletesGenerations(t *testing.T) {
	cfg := testConfig(40, 10, 3, 2, 64)
	g := newTestGame(t, Options{Seed: 1, Config: cfg})

	if g.Phase() != PhaseRunning {
		t.Fatalf("phase after NewGame = %v, want running", g.Phase())
	}
	first := g.Frame()
	if len(first.Blobs) != 40 || first.Survived != 40 || first.Killed() != 0 {
		t.Fatalf("unexpected initial frame: blobs=%d survived=%d", len(first.Blobs), first.Survived)
	}

	frames := 0
	err := g.Run(context.Background(), func(f Frame) error {
		frames++
		if len(f.Blobs) != cfg.Population.Cap {
			t.Errorf("frame %d has %d blobs", frames, len(f.Blobs))
		}
		if f.Survived < 0 || f.Survived > cfg.Population.Cap {
			t.Errorf("survived %d out of range", f.Survived)
		}
		return nil
	})
	if err != nil && errors.Is(err, ErrExtinct) {
		t.Skipf("seed went extinct: %v", err)
	}
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 10 steps plus the selection update per generation
	if frames != 33 {
		t.Errorf("observed %d frames, want 33", frames)
	}

	end := g.Frame()
	if end.Phase != PhaseFinished {
		t.Errorf("phase = %v, want finished", end.Phase)
	}
	if end.Generation != 3 {
		t.Errorf("generation = %d, want 3", end.Generation)
	}

	// Finished is static
	if err := g.Update(); err != nil {
		t.Errorf("Update after finish: %v", err)
	}
	if !slices.Equal(end.Blobs, g.Frame().Blobs) {
		t.Error("population changed after finish")
	}
}

func TestGameDeterministic(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
	}{
		{"inline", 1 << 20},
		{"pooled", 0},
	}

	// Inline and pooled stepping must agree with each other as well as
	// with themselves.
	var reference []components.Blob
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for run := 0; run < 2; run++ {
				cfg := testConfig(100, 20, 2, 4, tt.threshold)
				g := newTestGame(t, Options{Seed: 99, Config: cfg})
				for i := 0; i < 25; i++ {
					if err := g.Update(); err != nil {
						t.Skipf("seed went extinct: %v", err)
					}
				}
				blobs := g.Frame().Blobs
				if reference == nil {
					reference = blobs
					continue
				}
				if !slices.Equal(reference, blobs) {
					t.Fatalf("run %d diverged from reference", run)
				}
			}
		})
	}
}

func TestGameSurvivorsAndInheritance(t *testing.T) {
	cfg := testConfig(50, 8, 2, 2, 64)

	var g *Game
	var survivors []neural.Genomes
	var stats []telemetry.GenerationStats
	g = newTestGame(t, Options{
		Seed:   7,
		Config: cfg,
		StatsCallback: func(s telemetry.GenerationStats) {
			// The outgoing population is still in the world here
			blobs := g.Blobs()
			survivors = systems.SelectSurvivors(blobs)

			count := 0
			for _, b := range blobs {
				if b.Position.X >= 0 {
					count++
				}
			}
			if s.Survivors != count {
				t.Errorf("stats survivors = %d, want %d", s.Survivors, count)
			}
			stats = append(stats, s)
		},
	})

	for i := 0; i < cfg.Simulation.StepsPerGeneration; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if len(stats) != 0 || g.Phase() != PhaseSelecting {
		t.Fatalf("after the last step: phase = %v, stats = %d; want selecting, 0", g.Phase(), len(stats))
	}
	if err := g.Update(); err != nil {
		t.Skipf("seed went extinct: %v", err)
	}

	if len(stats) != 1 {
		t.Fatalf("stats callback ran %d times, want 1", len(stats))
	}
	f := g.Frame()
	if f.Generation != 1 || f.Step != 0 {
		t.Errorf("generation/step = %d/%d, want 1/0", f.Generation, f.Step)
	}
	if f.Survived != len(survivors) {
		t.Errorf("frame survived = %d, want %d", f.Survived, len(survivors))
	}
	if f.Killed()+f.Survived != cfg.Population.Cap {
		t.Errorf("killed %d + survived %d != cap", f.Killed(), f.Survived)
	}

	for i, b := range f.Blobs {
		if !slices.Contains(survivors, b.Genes.Set) {
			t.Errorf("blob %d carries a genome set no survivor had", i)
		}
	}
	if f.SampleCode != neural.SampleCode(&f.Blobs[0].Genes.Set) {
		t.Error("sample code does not describe blob 0")
	}
}

func TestGameExtinction(t *testing.T) {
	cfg := testConfig(12, 3, 5, 1, 64)
	g := newTestGame(t, Options{Seed: 3, Config: cfg})

	// Park everyone on the left with inert genomes
	for _, e := range g.entities {
		pos, _, genes := g.blobMap.Get(e)
		pos.X = -0.5
		genes.Set = neural.Genomes{}
	}

	frames := 0
	err := g.Run(context.Background(), func(Frame) error {
		frames++
		return nil
	})
	if !errors.Is(err, ErrExtinct) {
		t.Fatalf("Run error = %v, want ErrExtinct", err)
	}
	// 3 steps, then the selection update that finds nobody
	if frames != 4 {
		t.Errorf("observed %d frames, want 4", frames)
	}

	f := g.Frame()
	if f.Phase != PhaseExtinct {
		t.Errorf("phase = %v, want extinct", f.Phase)
	}
	if f.Generation != 0 {
		t.Errorf("generation advanced to %d", f.Generation)
	}
	if f.Survived != 0 || f.Killed() != cfg.Population.Cap {
		t.Errorf("survived/killed = %d/%d", f.Survived, f.Killed())
	}
	if err := g.Update(); !errors.Is(err, ErrExtinct) {
		t.Errorf("Update after extinction = %v, want ErrExtinct", err)
	}
}

func TestGameFramesShowSelectedPopulation(t *testing.T) {
	cfg := testConfig(40, 5, 2, 2, 64)

	var g *Game
	selected := make(map[int][]components.Blob)
	g = newTestGame(t, Options{
		Seed:   21,
		Config: cfg,
		StatsCallback: func(s telemetry.GenerationStats) {
			selected[s.Generation] = g.Blobs()
		},
	})

	var frames []Frame
	err := g.Run(context.Background(), func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	if err != nil && !errors.Is(err, ErrExtinct) {
		t.Fatalf("Run: %v", err)
	}
	if len(selected) == 0 {
		t.Fatal("no generation reached selection")
	}

	for gen, blobs := range selected {
		found := false
		for _, f := range frames {
			if f.Generation == gen && f.Phase == PhaseSelecting && f.Step == cfg.Simulation.StepsPerGeneration {
				found = found || slices.Equal(f.Blobs, blobs)
			}
		}
		if !found {
			t.Errorf("generation %d: population judged by selection never published", gen)
		}
	}
}

func TestGameSeedIndependentOfWorkers(t *testing.T) {
	run := func(workers int) []components.Blob {
		// Threshold 0 forces the pool even for small populations
		cfg := testConfig(200, 15, 3, workers, 0)
		g := newTestGame(t, Options{Seed: 42, Config: cfg})
		for i := 0; i < 40; i++ {
			if err := g.Update(); err != nil {
				t.Skipf("seed went extinct: %v", err)
			}
		}
		return g.Blobs()
	}

	first := NewGame(Options{Seed: 42, Config: testConfig(200, 15, 3, 2, 0)})
	second := NewGame(Options{Seed: 42, Config: testConfig(200, 15, 3, 8, 0)})
	if !slices.Equal(first.Blobs(), second.Blobs()) {
		t.Error("generation zero depends on the worker count")
	}
	first.Close()
	second.Close()

	for _, workers := range []int{1, 8} {
		if !slices.Equal(run(2), run(workers)) {
			t.Errorf("workers 2 and %d diverged", workers)
		}
	}
}

func TestGameRunHonoursContext(t *testing.T) {
	g := newTestGame(t, Options{Seed: 5, Config: testConfig(10, 5, 2, 1, 64)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if g.Frame().Step != 0 {
		t.Error("Run stepped after cancellation")
	}

	stop := errors.New("stop")
	err := g.Run(context.Background(), func(f Frame) error {
		if f.Step == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("Run error = %v, want observer error", err)
	}
}

func TestGameOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := testConfig(30, 4, 2, 2, 64)

	g := NewGame(Options{Seed: 11, Config: cfg, OutputDir: dir})
	err := g.Run(context.Background(), nil)
	if cerr := g.Close(); cerr != nil {
		t.Fatalf("Close: %v", cerr)
	}

	want := []string{"config.yaml", "generations.csv", "perf.csv"}
	switch {
	case err == nil:
		want = append(want, "population_2_finished.json")
	case errors.Is(err, ErrExtinct):
		// snapshot name depends on the extinct generation
	default:
		t.Fatalf("Run: %v", err)
	}

	for _, name := range want {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestPhaseAndFrameHelpers(t *testing.T) {
	tests := []struct {
		phase Phase
		name  string
		done  bool
	}{
		{PhaseInitializing, "initializing", false},
		{PhaseRunning, "running", false},
		{PhaseSelecting, "selecting", false},
		{PhaseRepopulating, "repopulating", false},
		{PhaseFinished, "finished", true},
		{PhaseExtinct, "extinct", true},
		{Phase(200), "unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.phase.Done(); got != tt.done {
				t.Errorf("Done() = %v, want %v", got, tt.done)
			}
		})
	}

	f := Frame{PopulationCap: 200, Survived: 150}
	if f.Killed() != 50 || f.SurvivalRate() != 0.75 {
		t.Errorf("Killed/SurvivalRate = %d/%v", f.Killed(), f.SurvivalRate())
	}
	if (&Frame{}).SurvivalRate() != 0 {
		t.Error("empty frame survival rate should be 0")
	}
}
