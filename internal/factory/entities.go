package factory

import (
	"emoji-life/internal/component"
	"emoji-life/internal/ecs"
	"emoji-life/internal/grid"
)

// Board maps grid coordinates to cell entities. SetupGrid installs it as a
// world resource.
type Board struct {
	Grid  grid.Grid
	cells []ecs.Entity
}

// At returns the cell entity at (x, y), normalising for wrapping grids.
func (b *Board) At(x, y int) (ecs.Entity, bool) {
	x, y, ok := b.Grid.Normalize(x, y)
	if !ok {
		return ecs.NilEntity, false
	}
	return b.cells[b.Grid.Index(x, y)], true
}

// Cells returns every cell entity in row-major order.
func (b *Board) Cells() []ecs.Entity { return b.cells }

// NewCell creates one cell entity at (x, y).
func NewCell(w *ecs.World, x, y int, alive bool) ecs.Entity {
	age := 0
	if alive {
		age = 1
	}
	return w.Spawn().
		With(component.Position{X: x, Y: y}).
		With(component.CellState{Alive: alive}).
		With(component.Age{Generations: age}).
		Build()
}

// SetupGrid fills w with one cell entity per grid square, alive where listed,
// and installs the resulting Board as a resource.
func SetupGrid(w *ecs.World, g grid.Grid, alive []grid.Point) *Board {
	ecs.Register[component.Position](w)
	ecs.Register[component.CellState](w)
	ecs.Register[component.Age](w)
	ecs.Register[component.Fade](w)

	live := make([]bool, g.Size())
	for _, p := range alive {
		if x, y, ok := g.Normalize(p.X, p.Y); ok {
			live[g.Index(x, y)] = true
		}
	}
	b := &Board{Grid: g, cells: make([]ecs.Entity, g.Size())}
	for y := range g.Height {
		for x := range g.Width {
			i := g.Index(x, y)
			b.cells[i] = NewCell(w, x, y, live[i])
		}
	}
	ecs.SetResource(w, b)
	return b
}

// Stamp sets the listed cells alive and returns how many were dead before.
// It needs the Board resource; without one it does nothing.
func Stamp(w *ecs.World, pts []grid.Point) int {
	b := ecs.Resource[Board](w)
	if b == nil {
		return 0
	}
	n := 0
	for _, p := range pts {
		e, ok := b.At(p.X, p.Y)
		if !ok {
			continue
		}
		st := ecs.GetComponentMut[component.CellState](w, e)
		if st == nil || st.Alive {
			continue
		}
		st.Alive = true
		if age := ecs.GetComponentMut[component.Age](w, e); age != nil {
			age.Generations = 1
		}
		ecs.RemoveComponent[component.Fade](w, e)
		n++
	}
	return n
}

// Kill sets every cell dead and clears ages and afterglow.
func Kill(w *ecs.World) {
	q := ecs.NewQuery2[component.CellState, component.Age](w)
	for q.Next() {
		st, age := q.Get()
		st.Alive = false
		age.Generations = 0
	}
	for _, e := range ecs.StoreOf[component.Fade](w).Entities() {
		ecs.RemoveComponent[component.Fade](w, e)
	}
}

// Reseed kills the board and stamps pts.
func Reseed(w *ecs.World, pts []grid.Point) int {
	Kill(w)
	return Stamp(w, pts)
}

// Alive returns the coordinates of every live cell, row-major.
func Alive(w *ecs.World) []grid.Point {
	b := ecs.Resource[Board](w)
	if b == nil {
		return nil
	}
	var out []grid.Point
	for i, e := range b.cells {
		if st, ok := ecs.GetComponent[component.CellState](w, e); ok && st.Alive {
			out = append(out, b.Grid.PointAt(i))
		}
	}
	return out
}
