package render

import "emoji-life/internal/grid"

// cellCols is the number of terminal columns one board cell occupies.
const cellCols = 2

// Camera is the part of the board a viewer sees. Origin is the board cell
// drawn in the top-left corner; Cols and Rows measure the terminal area.
type Camera struct {
	Origin grid.Point
	Cols   int
	Rows   int
}

// NewCamera returns a camera over a cols x rows area centered on center.
func NewCamera(center grid.Point, cols, rows int) *Camera {
	c := &Camera{Cols: cols, Rows: rows}
	c.Center(center)
	return c
}

func (c *Camera) span() (int, int) { return c.Cols / cellCols, c.Rows }

// Center moves the view so p sits in the middle.
func (c *Camera) Center(p grid.Point) {
	w, h := c.span()
	c.Origin = grid.Point{X: p.X - w/2, Y: p.Y - h/2}
}

// Middle returns the board cell in the middle of the view.
func (c *Camera) Middle() grid.Point {
	w, h := c.span()
	return c.Origin.Add(grid.Point{X: w / 2, Y: h / 2})
}

// Pan shifts the view by (dx, dy) board cells.
func (c *Camera) Pan(dx, dy int) {
	c.Origin = c.Origin.Add(grid.Point{X: dx, Y: dy})
}

// Resize changes the terminal area and keeps the middle cell in place.
func (c *Camera) Resize(cols, rows int) {
	mid := c.Middle()
	c.Cols, c.Rows = cols, rows
	c.Center(mid)
}

// ToScreen returns the terminal position of board cell p. ok is false when
// any part of the cell would fall outside the view.
func (c *Camera) ToScreen(p grid.Point) (x, y int, ok bool) {
	x = (p.X - c.Origin.X) * cellCols
	y = p.Y - c.Origin.Y
	ok = x >= 0 && x+cellCols <= c.Cols && y >= 0 && y < c.Rows
	return x, y, ok
}

// ToBoard returns the board cell under terminal position (x, y).
func (c *Camera) ToBoard(x, y int) grid.Point {
	return grid.Point{X: c.Origin.X + x/cellCols, Y: c.Origin.Y + y}
}
