package pattern

import "emoji-life/internal/grid"

func cells(xy ...int) []grid.Point {
	out := make([]grid.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, grid.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

var (
	// Glider travels one cell diagonally every four generations.
	Glider = Pattern{Name: "glider", Cells: cells(1, 0, 2, 1, 0, 2, 1, 2, 2, 2)}
	// Blinker oscillates with period 2.
	Blinker = Pattern{Name: "blinker", Cells: cells(1, 0, 1, 1, 1, 2)}
	// Toad oscillates with period 2.
	Toad = Pattern{Name: "toad", Cells: cells(2, 1, 3, 1, 4, 1, 1, 2, 2, 2, 3, 2)}
	// Beacon oscillates with period 2.
	Beacon = Pattern{Name: "beacon", Cells: cells(1, 1, 2, 1, 1, 2, 4, 3, 3, 4, 4, 4)}
	// Pulsar oscillates with period 3.
	Pulsar = Pattern{Name: "pulsar", Cells: cells(
		2, 0, 3, 0, 4, 0, 8, 0, 9, 0, 10, 0,
		0, 2, 5, 2, 7, 2, 12, 2,
		0, 3, 5, 3, 7, 3, 12, 3,
		0, 4, 5, 4, 7, 4, 12, 4,
		2, 5, 3, 5, 4, 5, 8, 5, 9, 5, 10, 5,
		2, 7, 3, 7, 4, 7, 8, 7, 9, 7, 10, 7,
		0, 8, 5, 8, 7, 8, 12, 8,
		0, 9, 5, 9, 7, 9, 12, 9,
		0, 10, 5, 10, 7, 10, 12, 10,
		2, 12, 3, 12, 4, 12, 8, 12, 9, 12, 10, 12,
	)}
)

// Builtins returns the patterns compiled into the binary.
func Builtins() []Pattern {
	return []Pattern{Glider, Blinker, Toad, Beacon, Pulsar}
}
