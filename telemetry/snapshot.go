package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/neural"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds one generation's population for later inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Generation int    `json:"generation"`
	Phase      string `json:"phase"`
	Survived   int    `json:"survived"`

	Blobs []BlobState `json:"blobs"`
}

// BlobState holds one blob's complete state. The genome set is stored as
// its sample code so it can be pasted into the genomes tool.
type BlobState struct {
	X        float32                     `json:"x"`
	Y        float32                     `json:"y"`
	Internal [neural.NumInternal]float32 `json:"internal"`
	Genomes  string                      `json:"genomes"`
}

// NewBlobState captures the state of b.
func NewBlobState(b *components.Blob) BlobState {
	return BlobState{
		X:        b.Position.X,
		Y:        b.Position.Y,
		Internal: b.Internal.I,
		Genomes:  neural.SampleCode(&b.Genes.Set),
	}
}

// Blob rebuilds the component form of the state.
func (s BlobState) Blob() (components.Blob, error) {
	set, err := neural.ParseSampleCode(s.Genomes)
	if err != nil {
		return components.Blob{}, fmt.Errorf("decode genomes: %w", err)
	}
	return components.Blob{
		Position: components.Position{X: s.X, Y: s.Y},
		Internal: components.Internal{I: s.Internal},
		Genes:    components.Genes{Set: set},
	}, nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("population_%d.json", snapshot.Generation)
	if snapshot.Phase != "" {
		name = fmt.Sprintf("population_%d_%s.json", snapshot.Generation, snapshot.Phase)
	}
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	return &snapshot, nil
}
