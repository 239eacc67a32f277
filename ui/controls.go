package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxStepsPerFrame bounds the speed slider.
const MaxStepsPerFrame = 50

// Controls renders the raygui run controls: a pause toggle and a
// steps-per-frame slider.
type Controls struct {
	x, y          float32
	width         float32
	paused        bool
	stepsPerFrame int
}

// NewControls creates the controls panel at (x, y).
func NewControls(x, y float32, stepsPerFrame int) *Controls {
	return &Controls{
		x:             x,
		y:             y,
		width:         220,
		stepsPerFrame: clampSteps(stepsPerFrame),
	}
}

// Paused reports whether the pause button is engaged.
func (c *Controls) Paused() bool {
	return c.paused
}

// StepsPerFrame returns the slider's current value.
func (c *Controls) StepsPerFrame() int {
	return c.stepsPerFrame
}

// Draw renders the controls and applies any interaction. Once the run is
// done there is nothing left to control and only a note is drawn.
func (c *Controls) Draw(done bool) {
	if done {
		rl.DrawText("Run complete", int32(c.x), int32(c.y), 16, rl.Gray)
		return
	}

	label := "Pause"
	if c.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: c.x, Y: c.y, Width: 100, Height: 30}, label) {
		c.paused = !c.paused
	}

	sy := c.y + 45
	rl.DrawText("Steps per frame", int32(c.x), int32(sy), 14, rl.Gray)
	sy += 18
	value := gui.SliderBar(
		rl.Rectangle{X: c.x, Y: sy, Width: c.width - 60, Height: 20},
		"1", fmt.Sprint(MaxStepsPerFrame),
		float32(c.stepsPerFrame), 1, MaxStepsPerFrame,
	)
	c.stepsPerFrame = clampSteps(int(value + 0.5))
	rl.DrawText(fmt.Sprintf("%d", c.stepsPerFrame), int32(c.x+c.width-50), int32(sy+2), 16, rl.White)
}

func clampSteps(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxStepsPerFrame {
		return MaxStepsPerFrame
	}
	return n
}
