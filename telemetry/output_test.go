package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}

	// All methods are nil-safe
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("expected empty dir")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	cfg := config.Default()
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	for gen := 0; gen < 3; gen++ {
		if err := om.WriteGeneration(GenerationStats{Generation: gen, Population: 10, Survivors: 4}); err != nil {
			t.Fatalf("WriteGeneration: %v", err)
		}
		if err := om.WritePerf(PerfStats{AvgStepDuration: time.Millisecond}, gen); err != nil {
			t.Fatalf("WritePerf: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("generations.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "generation,population,survivors,killed") {
		t.Errorf("unexpected header %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 4 {
		t.Errorf("perf.csv has %d lines, want 4", n)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestCollectorCollect(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	shared := components.RandomBlob(rng).Genes.Set

	blobs := []components.Blob{
		components.BlobWithGenomes(rng, shared),
		components.BlobWithGenomes(rng, shared),
		components.RandomBlob(rng),
		components.RandomBlob(rng),
	}
	blobs[0].Position.X = 0.5
	blobs[1].Position.X = -0.5
	blobs[2].Position.X = 0.25
	blobs[3].Position.X = -0.25

	c := NewCollector()
	c.RecordStep(2 * time.Microsecond)
	c.RecordStep(4 * time.Microsecond)

	stats := c.Collect(3, blobs, 2)

	if stats.Generation != 3 || stats.Population != 4 {
		t.Errorf("unexpected header %+v", stats)
	}
	if stats.Killed != 2 || stats.SurvivalRate != 0.5 {
		t.Errorf("killed = %d, rate = %v; want 2, 0.5", stats.Killed, stats.SurvivalRate)
	}
	if stats.XMean != 0 {
		t.Errorf("x mean = %v, want 0", stats.XMean)
	}
	if stats.Diversity != 3 {
		t.Errorf("diversity = %d, want 3", stats.Diversity)
	}
	if stats.MeanStepUS != 3 {
		t.Errorf("mean step = %v, want 3", stats.MeanStepUS)
	}

	// Counters reset after each collection
	if next := c.Collect(4, nil, 0); next.MeanStepUS != 0 || next.SurvivalRate != 0 {
		t.Errorf("collector not reset: %+v", next)
	}
}
