package system

import (
	"time"

	"emoji-life/internal/component"
	"emoji-life/internal/ecs"
)

// Population counts live cells.
func Population(w *ecs.World) int {
	n := 0
	for _, st := range ecs.StoreOf[component.CellState](w).All() {
		if st.Alive {
			n++
		}
	}
	return n
}

// Census records the population and its peak in the Stats resource.
func Census(w *ecs.World) {
	stats := ecs.Resource[Stats](w)
	if stats == nil {
		return
	}
	stats.Population = Population(w)
	stats.Peak = max(stats.Peak, stats.Population)
}

// Clock advances the world's Time resource by a fixed Step each pass,
// installing one if absent.
type Clock struct {
	Step time.Duration
}

// Name implements the schedule's naming hook.
func (Clock) Name() string { return "clock" }

// Run implements ecs.System.
func (c Clock) Run(w *ecs.World) {
	tm := ecs.Resource[ecs.Time](w)
	if tm == nil {
		tm = &ecs.Time{}
		ecs.SetResource(w, tm)
	}
	tm.Advance(c.Step)
}
