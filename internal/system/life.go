package system

import (
	"emoji-life/internal/component"
	"emoji-life/internal/ecs"
	"emoji-life/internal/grid"
)

// Next applies Conway's B3/S23 rule: a live cell survives with two or three
// live neighbours, a dead cell is born with exactly three.
func Next(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

// Life advances every cell one generation. States are read from a snapshot
// taken before any cell is updated, so update order never matters.
type Life struct {
	Grid grid.Grid

	snapshot []bool
}

// Name implements the schedule's naming hook.
func (*Life) Name() string { return "life" }

// Run implements ecs.System.
func (l *Life) Run(w *ecs.World) {
	g := l.Grid
	if cap(l.snapshot) < g.Size() {
		l.snapshot = make([]bool, g.Size())
	}
	snap := l.snapshot[:g.Size()]
	clear(snap)

	q := ecs.NewQuery2[component.Position, component.CellState](w)
	for q.Next() {
		pos, st := q.Get()
		if g.InBounds(pos.X, pos.Y) {
			snap[g.Index(pos.X, pos.Y)] = st.Alive
		}
	}

	stats := ecs.Resource[Stats](w)
	births, deaths := 0, 0
	q.Reset()
	for q.Next() {
		pos, st := q.Get()
		if !g.InBounds(pos.X, pos.Y) {
			continue
		}
		n := 0
		for _, nb := range g.Neighbors(pos.X, pos.Y) {
			if snap[g.Index(nb.X, nb.Y)] {
				n++
			}
		}
		was := snap[g.Index(pos.X, pos.Y)]
		st.Alive = Next(was, n)
		switch {
		case st.Alive && !was:
			births++
		case !st.Alive && was:
			deaths++
		}
	}
	if stats != nil {
		stats.Generation++
		stats.Births = births
		stats.Deaths = deaths
	}
}
