package game

import (
	"log/slog"

	"github.com/pthm-cable/blobs/telemetry"
)

// recordGeneration publishes a generation's stats to the callback, the log
// and the output files.
func (g *Game) recordGeneration(stats telemetry.GenerationStats) {
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	} else {
		slog.Debug("generation complete", "generation", stats.Generation, "survivors", stats.Survivors)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.Generation); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// saveSnapshot writes the current population to the output directory.
func (g *Game) saveSnapshot() {
	if g.outputManager == nil {
		return
	}

	path, err := g.outputManager.WriteSnapshot(g.createSnapshot())
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "generation", g.generation)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot() *telemetry.Snapshot {
	blobs := g.Blobs()
	snapshot := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    g.seed,
		Generation: g.generation,
		Phase:      g.phase.String(),
		Survived:   g.survived,
		Blobs:      make([]telemetry.BlobState, 0, len(blobs)),
	}

	for i := range blobs {
		snapshot.Blobs = append(snapshot.Blobs, telemetry.NewBlobState(&blobs[i]))
	}

	return snapshot
}
