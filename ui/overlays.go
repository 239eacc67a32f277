package ui

import (
	"hash/fnv"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/neural"
	"github.com/pthm-cable/blobs/systems"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayGenomeColors OverlayID = "genome_colors"
	OverlaySurvivors    OverlayID = "survivors"
	OverlayPerf         OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "G")
	Category    string      // Grouping (e.g., "visual", "debug")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayGenomeColors,
		Name:        "Genome Colors",
		Description: "Color blobs by genome set; clones share a color",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "visual",
		Exclusive:   []OverlayID{OverlaySurvivors},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlaySurvivors,
		Name:        "Survivors",
		Description: "Color blobs by which side of the board they are on",
		Key:         rl.KeyS,
		KeyLabel:    "S",
		Category:    "visual",
		Exclusive:   []OverlayID{OverlayGenomeColors},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Step timings by phase",
		Key:         rl.KeyF,
		KeyLabel:    "F",
		Category:    "debug",
	})
}

// Register adds an overlay descriptor.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	desc, ok := r.byID[id]
	if !ok {
		return false
	}

	newState := !r.enabled[id]
	r.enabled[id] = newState

	// If enabling, disable exclusive overlays
	if newState {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}

	return newState
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress toggles the overlay bound to key, if any.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// HandleInput drains raylib's key queue and toggles bound overlays.
func (r *OverlayRegistry) HandleInput() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := r.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", string(id), "enabled", on)
		}
	}
}

// GenomeHue maps a genome set to a stable hue in [0, 360).
func GenomeHue(set *neural.Genomes) float32 {
	h := fnv.New32a()
	h.Write(neural.EncodeGenomes(set))
	return float32(h.Sum32() % 360)
}

// blobColor picks a marker color according to the active overlays.
func (r *OverlayRegistry) blobColor(b *components.Blob, theme Theme) rl.Color {
	switch {
	case r.IsEnabled(OverlayGenomeColors):
		return rl.ColorFromHSV(GenomeHue(&b.Genes.Set), 0.7, 0.95)
	case r.IsEnabled(OverlaySurvivors):
		if systems.Survives(b.Position) {
			return theme.BarFillPositive
		}
		return theme.BarFillNegative
	}
	return theme.Blob
}
