package pattern

import (
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"emoji-life/internal/grid"
)

// Pattern is a named set of live cells, relative to its own origin.
type Pattern struct {
	Name  string
	Cells []grid.Point
}

// Bounds returns the tightest rectangle around the pattern's cells. An empty
// pattern has a zero Rect.
func (p Pattern) Bounds() grid.Rect {
	if len(p.Cells) == 0 {
		return grid.Rect{}
	}
	r := grid.Rect{X1: p.Cells[0].X, Y1: p.Cells[0].Y, X2: p.Cells[0].X, Y2: p.Cells[0].Y}
	for _, c := range p.Cells[1:] {
		r.X1 = min(r.X1, c.X)
		r.Y1 = min(r.Y1, c.Y)
		r.X2 = max(r.X2, c.X)
		r.Y2 = max(r.Y2, c.Y)
	}
	return r
}

// Size returns the width and height of the pattern's bounding box.
func (p Pattern) Size() (int, int) {
	if len(p.Cells) == 0 {
		return 0, 0
	}
	b := p.Bounds()
	return b.Width(), b.Height()
}

// At translates the pattern so its bounding box starts at origin. Cells that
// fall off g are dropped, unless g wraps.
func (p Pattern) At(g grid.Grid, origin grid.Point) []grid.Point {
	b := p.Bounds()
	out := make([]grid.Point, 0, len(p.Cells))
	for _, c := range p.Cells {
		x, y, ok := g.Normalize(origin.X+c.X-b.X1, origin.Y+c.Y-b.Y1)
		if ok {
			out = append(out, grid.Point{X: x, Y: y})
		}
	}
	return out
}

// Centered places the pattern in the middle of g. A pattern larger than the
// grid is anchored at the top-left corner and clipped.
func (p Pattern) Centered(g grid.Grid) []grid.Point {
	w, h := p.Size()
	origin := grid.Point{X: max(g.Width-w, 0) / 2, Y: max(g.Height-h, 0) / 2}
	clip := g
	clip.Wrap = false
	return p.At(clip, origin)
}

// Parse builds a pattern from rows of text. 'O', '#', '*' and 'X' mark live
// cells; '.', '_' and ' ' mark dead ones.
func Parse(name string, rows []string) (Pattern, error) {
	p := Pattern{Name: name}
	for y, row := range rows {
		for x, r := range []rune(row) {
			switch r {
			case 'O', 'o', '#', '*', 'X', 'x':
				p.Cells = append(p.Cells, grid.Point{X: x, Y: y})
			case '.', '_', ' ':
			default:
				return Pattern{}, eris.Errorf("pattern %q: row %d col %d: unexpected %q", name, y, x, r)
			}
		}
	}
	if len(p.Cells) == 0 {
		return Pattern{}, eris.Errorf("pattern %q has no live cells", name)
	}
	return p, nil
}

// Rows renders the pattern back to text using 'O' and '.'.
func (p Pattern) Rows() []string {
	if len(p.Cells) == 0 {
		return nil
	}
	b := p.Bounds()
	rows := make([][]byte, b.Height())
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", b.Width()))
	}
	for _, c := range p.Cells {
		rows[c.Y-b.Y1][c.X-b.X1] = 'O'
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = string(r)
	}
	return out
}

// Set is an ordered collection of patterns looked up by name.
type Set struct {
	patterns []Pattern
}

// NewSet returns a set holding the built-in patterns followed by extra.
// Later patterns replace earlier ones with the same name.
func NewSet(extra ...Pattern) *Set {
	s := &Set{}
	for _, p := range Builtins() {
		s.Add(p)
	}
	for _, p := range extra {
		s.Add(p)
	}
	return s
}

// Add inserts p, replacing a pattern with the same name.
func (s *Set) Add(p Pattern) {
	i := slices.IndexFunc(s.patterns, func(q Pattern) bool { return strings.EqualFold(q.Name, p.Name) })
	if i >= 0 {
		s.patterns[i] = p
		return
	}
	s.patterns = append(s.patterns, p)
}

// Lookup finds a pattern by case-insensitive name.
func (s *Set) Lookup(name string) (Pattern, bool) {
	for _, p := range s.patterns {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Names lists pattern names in insertion order.
func (s *Set) Names() []string {
	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.Name
	}
	return out
}

// All returns the patterns in insertion order.
func (s *Set) All() []Pattern { return slices.Clone(s.patterns) }
