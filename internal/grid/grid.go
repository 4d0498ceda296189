package grid

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Rect is an axis-aligned rectangle with inclusive corners.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Width is the number of columns r spans.
func (r Rect) Width() int { return r.X2 - r.X1 + 1 }

// Height is the number of rows r spans.
func (r Rect) Height() int { return r.Y2 - r.Y1 + 1 }

// Grid describes the Life board. With Wrap set the edges join, making the
// board a torus.
type Grid struct {
	Width, Height int
	Wrap          bool
}

// New returns a width×height grid.
func New(width, height int, wrap bool) Grid {
	return Grid{Width: width, Height: height, Wrap: wrap}
}

// Size is the number of cells.
func (g Grid) Size() int { return g.Width * g.Height }

// Bounds returns the rectangle covering the whole grid.
func (g Grid) Bounds() Rect {
	return Rect{X1: 0, Y1: 0, X2: g.Width - 1, Y2: g.Height - 1}
}

// InBounds reports whether (x, y) is within the grid boundaries.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Normalize maps (x, y) onto the grid. On a wrapping grid every coordinate
// lands somewhere; otherwise out-of-bounds coordinates report false.
func (g Grid) Normalize(x, y int) (int, int, bool) {
	if g.Wrap && g.Width > 0 && g.Height > 0 {
		return mod(x, g.Width), mod(y, g.Height), true
	}
	return x, y, g.InBounds(x, y)
}

// Index returns the row-major offset of (x, y). Callers check bounds first.
func (g Grid) Index(x, y int) int { return y*g.Width + x }

// PointAt is the inverse of Index.
func (g Grid) PointAt(i int) Point { return Point{X: i % g.Width, Y: i / g.Width} }

var offsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors returns the Moore neighbourhood of (x, y), clipped at the edges
// of a non-wrapping grid. On tiny wrapping grids a cell may appear more than
// once.
func (g Grid) Neighbors(x, y int) []Point {
	out := make([]Point, 0, len(offsets))
	for _, o := range offsets {
		nx, ny, ok := g.Normalize(x+o.X, y+o.Y)
		if ok {
			out = append(out, Point{X: nx, Y: ny})
		}
	}
	return out
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
