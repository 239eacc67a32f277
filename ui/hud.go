package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/game"
	"github.com/pthm-cable/blobs/neural"
	"github.com/pthm-cable/blobs/telemetry"
)

// HUD renders the generation status, the sample blob and the run constants.
type HUD struct {
	renderer   *Renderer
	x, y       int32
	constantsX int32
}

// NewHUD creates a HUD whose left column starts at x.
func NewHUD(x, y, constantsX int32) *HUD {
	return &HUD{
		renderer:   NewRenderer(),
		x:          x,
		y:          y,
		constantsX: constantsX,
	}
}

// Draw renders the HUD for one frame.
func (h *HUD) Draw(f *game.Frame, paused bool) {
	r := h.renderer
	indent := h.x + 20

	y := r.DrawLines(h.x, h.y, StatusLines(f, paused))
	y += r.Theme.LineHeight

	y = r.DrawSectionHeader(h.x, y, fmt.Sprintf("Analyzing blob %s:", f.SampleCode))
	y = r.DrawLines(indent, y, SampleLines(&f.Sample))
	y += r.Theme.LineHeight / 2

	// Internal state bars, ranged like their source descriptors
	sources := neural.SourceDescriptors()
	for i, v := range f.Sample.Internal.I {
		d := sources[neural.SourceInternal0+neural.Source(i)]
		y = r.DrawCenteredBar(indent, y, d.Label, v, d.Min, d.Max, 300)
	}

	cy := r.DrawSectionHeader(h.constantsX, h.y, "Constants:")
	r.DrawLines(h.constantsX+20, cy, ConstantLines(f))
}

// StatusLines returns the generation and survival summary.
func StatusLines(f *game.Frame, paused bool) []string {
	lines := []string{
		fmt.Sprintf("Generation %d. Hold P to pause, press Q to quit.", f.Generation),
		fmt.Sprintf("%.1f%% survival rate, killed %d.", 100*f.SurvivalRate(), f.Killed()),
	}
	switch {
	case f.Phase == game.PhaseExtinct:
		lines = append(lines, "Extinct: nobody reached the right half.")
	case f.Phase == game.PhaseFinished:
		lines = append(lines, fmt.Sprintf("Finished after %d generations.", f.Generations))
	case paused:
		lines = append(lines, "PAUSED")
	default:
		lines = append(lines, fmt.Sprintf("Step %d/%d", f.Step, f.StepsPerGeneration))
	}
	return lines
}

// SampleLines describes a blob's position, internal state and genome set.
func SampleLines(b *components.Blob) []string {
	lines := []string{fmt.Sprintf("(x, y) = (%+.3f, %+.3f)", b.Position.X, b.Position.Y)}
	for i, g := range b.Genes.Set {
		line := fmt.Sprintf("%d: %s", i, g)
		if d, ok := g.Sink.Describe(); ok {
			line += "  " + d.Description
		}
		lines = append(lines, line)
	}
	for _, fd := range components.BlobFieldDescriptors() {
		if fd.Group == "internal" {
			lines = append(lines, fd.Render(b))
		}
	}
	return lines
}

// ConstantLines lists the configured run parameters.
func ConstantLines(f *game.Frame) []string {
	return []string{
		fmt.Sprintf("Population cap of %d.", f.PopulationCap),
		fmt.Sprintf("Running %d steps/generation.", f.StepsPerGeneration),
		fmt.Sprintf("Running up to %d generations.", f.Generations),
	}
}

// PerfPanel renders step timings by phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  (%.0f steps/s)", stats.AvgStepDuration.Round(time.Microsecond), stats.StepsPerSecond), x, y, 14, rl.Yellow)
	y += 16
	if stats.FPS > 0 {
		rl.DrawText(fmt.Sprintf("FPS: %.0f", stats.FPS), x, y, 14, rl.LightGray)
		y += 16
	}

	for _, line := range PerfLines(stats) {
		rl.DrawText(line, x, y, 14, rl.LightGray)
		y += 16
	}
}

// PerfLines lists the share of step time per phase, in pipeline order.
func PerfLines(stats telemetry.PerfStats) []string {
	var lines []string
	for _, phase := range telemetry.Phases() {
		pct, ok := stats.PhasePct[phase]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-11s %5.1f%%  %s", phase, pct, stats.PhaseAvg[phase].Round(time.Microsecond)))
	}
	return lines
}
