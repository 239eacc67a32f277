package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/neural"
	"github.com/pthm-cable/blobs/systems"
	"github.com/pthm-cable/blobs/telemetry"
)

// ErrExtinct is returned once a selection leaves no survivors.
var ErrExtinct = errors.New("population extinct")

// Options configures a Game.
type Options struct {
	Seed      int64
	Config    *config.Config // nil uses the embedded defaults
	LogStats  bool
	OutputDir string

	// StatsCallback receives every generation's stats at selection time,
	// before the population is replaced.
	StatsCallback func(telemetry.GenerationStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	seed  int64
	cfg   *config.Config

	blobMap    *ecs.Map3[components.Position, components.Internal, components.Genes]
	blobFilter *ecs.Filter3[components.Position, components.Internal, components.Genes]

	// Live entities in population order; index 0 is the sample blob.
	entities []ecs.Entity

	parallel *parallelState

	// State
	phase      Phase
	generation int
	step       int
	survived   int
	err        error

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.GenerationStats)
	logStats      bool
}

// NewGame creates a game and spawns generation zero.
// Output directory failures are logged and disable file output.
func NewGame(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	world := ecs.NewWorld()
	g := &Game{
		world:         world,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		seed:          opts.Seed,
		cfg:           cfg,
		blobMap:       ecs.NewMap3[components.Position, components.Internal, components.Genes](world),
		blobFilter:    ecs.NewFilter3[components.Position, components.Internal, components.Genes](world),
		entities:      make([]ecs.Entity, 0, cfg.Population.Cap),
		collector:     telemetry.NewCollector(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		slog.Info("output enabled", "dir", om.Dir())
	}

	workers := cfg.Derived.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.initialize(workers)
	return g
}

// initialize spawns a fully random generation zero, then derives the step
// generators. Neither depends on the worker count.
func (g *Game) initialize(workers int) {
	g.phase = PhaseInitializing

	blobs := make([]components.Blob, g.cfg.Population.Cap)
	for i := range blobs {
		blobs[i] = components.RandomBlob(g.rng)
	}
	g.spawn(blobs)
	g.parallel = newParallelState(workers, g.cfg.Parallel.Threshold, g.rng)

	g.survived = g.cfg.Population.Cap
	g.phase = PhaseRunning

	slog.Info("population initialized",
		"seed", g.seed,
		"cap", g.cfg.Population.Cap,
		"steps_per_generation", g.cfg.Simulation.StepsPerGeneration,
		"generations", g.cfg.Simulation.Generations,
		"workers", g.parallel.numWorkers,
	)
}

// spawn creates one entity per blob, appended in order.
func (g *Game) spawn(blobs []components.Blob) {
	for i := range blobs {
		b := &blobs[i]
		e := g.blobMap.NewEntity(&b.Position, &b.Internal, &b.Genes)
		g.entities = append(g.entities, e)
	}
}

// despawnAll removes every blob entity.
func (g *Game) despawnAll() {
	// Collect first; the world is locked while a query is open
	toRemove := make([]ecs.Entity, 0, len(g.entities))
	query := g.blobFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}

	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
	g.entities = g.entities[:0]
}

// Update advances the simulation by one step. After the last step of a
// generation the engine waits in PhaseSelecting, so the population that
// selection judges is published as a frame; the following Update runs
// selection and repopulation without stepping. Once the run is finished
// Update is a no-op; once extinct it keeps returning the extinction error.
func (g *Game) Update() error {
	switch g.phase {
	case PhaseFinished:
		return nil
	case PhaseExtinct:
		return g.err
	case PhaseSelecting:
		g.perfCollector.StartStep()
		err := g.endGeneration()
		g.perfCollector.EndStep()
		return err
	}

	g.perfCollector.StartStep()
	start := time.Now()
	g.simulationStep()
	g.collector.RecordStep(time.Since(start))
	g.perfCollector.EndStep()

	g.step++
	if g.step >= g.cfg.Simulation.StepsPerGeneration {
		g.phase = PhaseSelecting
	}
	return nil
}

// simulationStep runs the per-blob rules over the whole population.
func (g *Game) simulationStep() {
	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	g.snapshotBlobs()

	g.perfCollector.StartPhase(telemetry.PhaseThink)
	g.parallel.compute()

	g.perfCollector.StartPhase(telemetry.PhaseApply)
	g.applySnapshots()
}

// endGeneration selects survivors and replaces the population.
func (g *Game) endGeneration() error {
	g.perfCollector.StartPhase(telemetry.PhaseSelect)

	blobs := g.Blobs()
	survivors := systems.SelectSurvivors(blobs)
	g.survived = len(survivors)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordGeneration(g.collector.Collect(g.generation, blobs, g.survived))

	g.phase = PhaseRepopulating
	g.perfCollector.StartPhase(telemetry.PhaseRepopulate)

	next, err := systems.Repopulate(g.rng, survivors, g.cfg.Population.Cap)
	if errors.Is(err, systems.ErrNoSurvivors) {
		g.phase = PhaseExtinct
		g.err = fmt.Errorf("generation %d: %w", g.generation, ErrExtinct)
		slog.Error("population extinct", "generation", g.generation, "population", len(blobs))
		g.saveSnapshot()
		return g.err
	}
	if err != nil {
		return fmt.Errorf("repopulating generation %d: %w", g.generation+1, err)
	}

	g.despawnAll()
	g.spawn(next)

	g.generation++
	g.step = 0

	if g.generation >= g.cfg.Simulation.Generations {
		g.phase = PhaseFinished
		slog.Info("simulation finished", "generations", g.generation, "survived", g.survived)
		g.saveSnapshot()
		return nil
	}

	g.phase = PhaseRunning
	return nil
}

// Run steps the simulation until it finishes, goes extinct, ctx is done, or
// observer returns an error. observer, if non-nil, receives a Frame after
// every Update, including the pre-selection frame of each generation and
// the update that ends in extinction.
func (g *Game) Run(ctx context.Context, observer func(Frame) error) error {
	for !g.phase.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := g.Update()
		if observer != nil {
			if oerr := observer(g.Frame()); oerr != nil {
				return oerr
			}
		}
		if err != nil {
			return err
		}
	}
	return g.err
}

// Blobs returns a copy of the population in order.
func (g *Game) Blobs() []components.Blob {
	blobs := make([]components.Blob, len(g.entities))
	for i, e := range g.entities {
		pos, internal, genes := g.blobMap.Get(e)
		blobs[i] = components.Blob{Position: *pos, Internal: *internal, Genes: *genes}
	}
	return blobs
}

// Frame returns a read-only copy of the current state.
func (g *Game) Frame() Frame {
	f := Frame{
		Generation:         g.generation,
		Generations:        g.cfg.Simulation.Generations,
		StepsPerGeneration: g.cfg.Simulation.StepsPerGeneration,
		PopulationCap:      g.cfg.Population.Cap,
		Step:               g.step,
		Phase:              g.phase,
		Blobs:              g.Blobs(),
		Survived:           g.survived,
	}
	if len(f.Blobs) > 0 {
		f.Sample = f.Blobs[0]
		f.SampleCode = neural.SampleCode(&f.Sample.Genes.Set)
	}
	return f
}

// Phase returns the current loop phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Generation returns the current generation index.
func (g *Game) Generation() int {
	return g.generation
}

// Err returns the terminal error, if any.
func (g *Game) Err() error {
	return g.err
}

// Seed returns the seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// PerfCollector returns the performance collector.
func (g *Game) PerfCollector() *telemetry.PerfCollector {
	return g.perfCollector
}

// Close stops the worker pool and flushes output files.
func (g *Game) Close() error {
	g.stopParallelWorkers()
	if err := g.outputManager.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
