package component

// Position is a cell's coordinate on the board.
type Position struct {
	X, Y int
}
