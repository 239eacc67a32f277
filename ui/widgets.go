package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLine draws one line of body text and returns the new Y position.
func (r *Renderer) DrawLine(x, y int32, text string) int32 {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawLines draws consecutive lines of body text.
func (r *Renderer) DrawLines(x, y int32, lines []string) int32 {
	for _, line := range lines {
		y = r.DrawLine(x, y, line)
	}
	return y
}

// DrawCenteredBar draws a bar centered at 0 for values in [minVal, maxVal].
// Values beyond the range fill the bar and are still printed exactly.
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value, minVal, maxVal float32, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 70

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	// Zero line
	span := maxVal - minVal
	zero := float32(0.5)
	if span > 0 {
		zero = clamp01(-minVal / span)
	}
	zeroX := barX + int32(float32(barWidth)*zero)
	rl.DrawLine(zeroX, y+2, zeroX, y+2+r.Theme.BarHeight, rl.Gray)

	pos := float32(0.5)
	if span > 0 {
		pos = clamp01((value - minVal) / span)
	}
	valueX := barX + int32(float32(barWidth)*pos)

	if valueX >= zeroX {
		rl.DrawRectangle(zeroX, y+2, valueX-zeroX, r.Theme.BarHeight, r.Theme.BarFillPositive)
	} else {
		rl.DrawRectangle(valueX, y+2, zeroX-valueX, r.Theme.BarHeight, r.Theme.BarFillNegative)
	}

	rl.DrawText(fmt.Sprintf("%+.3f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
