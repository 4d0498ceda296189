package pattern

import (
	"math/rand"

	"emoji-life/internal/grid"
)

// Soup scatters live cells over g, each cell alive with probability density.
func Soup(g grid.Grid, density float64, rng *rand.Rand) []grid.Point {
	var out []grid.Point
	for y := range g.Height {
		for x := range g.Width {
			if rng.Float64() < density {
				out = append(out, grid.Point{X: x, Y: y})
			}
		}
	}
	return out
}
