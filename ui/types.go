// Package ui draws the board, the blob population and the HUD with raylib,
// plus the raygui run controls.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Board maps simulation coordinates in [-1, 1] onto the screen.
type Board struct {
	X, Y     float32 // top-left corner in pixels
	Size     float32 // side length of the [-1, 1] square in pixels
	BlobSize float32 // side length of one blob marker
}

// DefaultBoard returns the 512px board drawn at (50, 50).
func DefaultBoard() Board {
	return Board{X: 50, Y: 50, Size: 512, BlobSize: 4}
}

// ToScreen converts a simulation position to the marker's top-left pixel.
func (b Board) ToScreen(x, y float32) (float32, float32) {
	half := b.Size / 2
	return b.X + (x+1)*half, b.Y + (y+1)*half
}

// EliminationZone returns the left half of the board, where blobs die at
// the end of each generation.
func (b Board) EliminationZone() rl.Rectangle {
	return rl.Rectangle{X: b.X, Y: b.Y, Width: b.Size / 2, Height: b.Size + b.BlobSize}
}

// Right returns the x pixel just past the board.
func (b Board) Right() float32 {
	return b.X + b.Size + b.BlobSize
}

// Theme holds UI styling constants.
type Theme struct {
	Background      rl.Color
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	EliminationZone rl.Color
	Blob            rl.Color
	SampleBlob      rl.Color
	BarBg           rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:      rl.Black,
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.White,
		EliminationZone: rl.Red,
		Blob:            rl.White,
		SampleBlob:      rl.Blue,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:         10,
		LineHeight:      20,
		LabelWidth:      40,
		BarHeight:       12,
		FontSize:        16,
		HeaderFontSize:  18,
	}
}
