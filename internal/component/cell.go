package component

// CellState is the Life state of one board cell.
type CellState struct {
	Alive bool
}

// Age counts consecutive generations a cell has been alive.
type Age struct {
	Generations int
}

// Fade is attached to a cell that just died and counts down the steps its
// afterglow stays visible.
type Fade struct {
	Steps int
}
