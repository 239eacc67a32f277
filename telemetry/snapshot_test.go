package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/blobs/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	rng := rand.New(rand.NewSource(42))

	originals := make([]components.Blob, 5)
	snapshot := &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    42,
		Generation: 12,
		Phase:      "finished",
		Survived:   3,
	}
	for i := range originals {
		originals[i] = components.RandomBlob(rng)
		snapshot.Blobs = append(snapshot.Blobs, NewBlobState(&originals[i]))
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "population_12_finished.json" {
		t.Errorf("unexpected snapshot name %q", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Generation != 12 || loaded.Survived != 3 || loaded.RNGSeed != 42 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Blobs) != len(originals) {
		t.Fatalf("blob count = %d, want %d", len(loaded.Blobs), len(originals))
	}

	for i, state := range loaded.Blobs {
		b, err := state.Blob()
		if err != nil {
			t.Fatalf("blob %d: %v", i, err)
		}
		if b != originals[i] {
			t.Errorf("blob %d = %+v, want %+v", i, b, originals[i])
		}
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "{not json"},
		{"wrong version", `{"version": 99}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSnapshot(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadSnapshot(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBlobStateBadGenomes(t *testing.T) {
	state := BlobState{Genomes: "zz"}
	if _, err := state.Blob(); err == nil {
		t.Error("expected decode error")
	}
}
