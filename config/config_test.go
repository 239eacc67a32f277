package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Population.Cap != 200 {
		t.Errorf("population cap = %d, want 200", cfg.Population.Cap)
	}
	if cfg.Simulation.StepsPerGeneration != 300 {
		t.Errorf("steps per generation = %d, want 300", cfg.Simulation.StepsPerGeneration)
	}
	if cfg.Simulation.Generations != 100 {
		t.Errorf("generations = %d, want 100", cfg.Simulation.Generations)
	}
	if cfg.Derived.Workers < 1 {
		t.Errorf("derived workers = %d, want >= 1", cfg.Derived.Workers)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "population:\n  cap: 4\nparallel:\n  workers: 3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Population.Cap != 4 {
		t.Errorf("population cap = %d, want 4", cfg.Population.Cap)
	}
	if cfg.Simulation.Generations != 100 {
		t.Errorf("generations = %d, want default 100", cfg.Simulation.Generations)
	}
	if cfg.Derived.Workers != 3 {
		t.Errorf("derived workers = %d, want 3", cfg.Derived.Workers)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero cap", "population:\n  cap: 0\n", "population.cap"},
		{"negative steps", "simulation:\n  steps_per_generation: -1\n", "steps_per_generation"},
		{"zero generations", "simulation:\n  generations: 0\n", "simulation.generations"},
		{"negative workers", "parallel:\n  workers: -2\n", "parallel.workers"},
		{"malformed", "population: [", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Cap = 17

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Population.Cap != 17 {
		t.Errorf("population cap = %d, want 17", loaded.Population.Cap)
	}
}
