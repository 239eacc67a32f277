package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/game"
	"github.com/pthm-cable/blobs/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and population snapshots")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	stepsPerFrame := flag.Int("steps-per-frame", 1, "Simulation steps per rendered frame")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		Config:    cfg,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	var err error
	if *headless {
		err = runHeadless(opts)
	} else {
		err = runWindow(opts, cfg, *stepsPerFrame)
	}
	if err != nil {
		slog.Error("simulation stopped", "error", err)
		os.Exit(1)
	}
}

// runHeadless runs every generation without a window. Ctrl-C stops between steps.
func runHeadless(opts game.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := game.NewGame(opts)
	defer closeGame(g)

	slog.Info("starting headless simulation", "seed", opts.Seed)

	err := g.Run(ctx, nil)
	if errors.Is(err, context.Canceled) {
		slog.Info("interrupted", "seed", g.Seed(), "generation", g.Generation())
		return nil
	}
	if err == nil {
		slog.Info("simulation complete", "seed", g.Seed(), "generation", g.Generation())
	}
	return err
}

// runWindow runs the simulation under raylib. After the run ends the final
// population stays on screen until the window is closed.
func runWindow(opts game.Options, cfg *config.Config, stepsPerFrame int) error {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Blobs")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyQ)

	g := game.NewGame(opts)
	defer closeGame(g)

	view := ui.NewView(int32(cfg.Screen.Width), int32(cfg.Screen.Height), stepsPerFrame)
	controls := view.Controls()

	for !rl.WindowShouldClose() {
		view.HandleInput()
		paused := controls.Paused() || rl.IsKeyDown(rl.KeyP)

		if !paused {
			for i := 0; i < controls.StepsPerFrame() && !g.Phase().Done(); i++ {
				if err := g.Update(); err != nil {
					break
				}
			}
		}
		g.PerfCollector().RecordFrame()

		frame := g.Frame()
		rl.BeginDrawing()
		view.Draw(&frame, paused, g.PerfCollector().Stats())
		rl.EndDrawing()
	}

	slog.Info("window closed", "seed", g.Seed(), "generation", g.Generation(), "phase", g.Phase().String())
	return g.Err()
}

func closeGame(g *game.Game) {
	if err := g.Close(); err != nil {
		slog.Error("failed to close game", "error", err)
	}
}
