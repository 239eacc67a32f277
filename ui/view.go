package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/game"
	"github.com/pthm-cable/blobs/telemetry"
)

// View draws complete frames: board, population, HUD and controls.
type View struct {
	board    Board
	theme    Theme
	hud      *HUD
	perf     *PerfPanel
	controls *Controls
	overlays *OverlayRegistry
	height   int32
}

// NewView lays out a view for a screen of the given size.
func NewView(width, height int32, stepsPerFrame int) *View {
	board := DefaultBoard()
	hudX := int32(board.Right()) + 46
	constantsX := width - 280
	return &View{
		board:    board,
		theme:    DefaultTheme(),
		hud:      NewHUD(hudX, int32(board.Y), constantsX),
		perf:     NewPerfPanel(constantsX, int32(board.Y)+200),
		controls: NewControls(float32(constantsX), board.Y+100, stepsPerFrame),
		overlays: NewOverlayRegistry(),
		height:   height,
	}
}

// Controls returns the interactive run controls.
func (v *View) Controls() *Controls {
	return v.controls
}

// HandleInput processes overlay key toggles.
func (v *View) HandleInput() {
	v.overlays.HandleInput()
}

// Draw renders one frame. Must be called between BeginDrawing and EndDrawing.
func (v *View) Draw(f *game.Frame, paused bool, perf telemetry.PerfStats) {
	rl.ClearBackground(v.theme.Background)

	rl.DrawRectangleRec(v.board.EliminationZone(), v.theme.EliminationZone)
	v.drawBlobs(f)

	v.hud.Draw(f, paused)
	v.controls.Draw(f.Phase.Done())
	if v.overlays.IsEnabled(OverlayPerf) {
		v.perf.Draw(perf)
	}
	v.drawLegend()
}

// drawBlobs draws every blob, the sample blob last so it stays visible.
func (v *View) drawBlobs(f *game.Frame) {
	size := v.board.BlobSize
	for i := 1; i < len(f.Blobs); i++ {
		b := &f.Blobs[i]
		x, y := v.board.ToScreen(b.Position.X, b.Position.Y)
		rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: size, Height: size}, v.overlays.blobColor(b, v.theme))
	}
	if len(f.Blobs) > 0 {
		p := f.Sample.Position
		x, y := v.board.ToScreen(p.X, p.Y)
		rl.DrawRectangle(int32(x-1), int32(y-1), int32(size+2), int32(size+2), v.theme.SampleBlob)
	}
}

// drawLegend renders the key legend at the bottom of the screen.
func (v *View) drawLegend() {
	parts := []string{"P: hold to pause", "Q: quit"}
	for _, desc := range v.overlays.All() {
		parts = append(parts, desc.KeyLabel+": "+desc.Name)
	}
	rl.DrawText(strings.Join(parts, " | "), 10, v.height-25, 14, rl.Gray)
}
