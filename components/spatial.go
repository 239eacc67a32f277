package components

// Position is a blob's location measured from the center of the board.
// (-1, -1) is the bottom left corner, (1, 1) the top right.
type Position struct {
	X, Y float32
}
