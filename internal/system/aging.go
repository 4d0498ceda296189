package system

import (
	"emoji-life/internal/component"
	"emoji-life/internal/ecs"
)

// Aging counts how long each live cell has survived. A cell that just died
// has its age reset and, when FadeSteps is positive, gets a Fade afterglow.
type Aging struct {
	FadeSteps int
}

// Name implements the schedule's naming hook.
func (Aging) Name() string { return "aging" }

// Run implements ecs.System.
func (a Aging) Run(w *ecs.World) {
	fades := ecs.StoreOf[component.Fade](w)
	q := ecs.NewQuery2[component.CellState, component.Age](w)
	for q.Next() {
		st, age := q.Get()
		switch {
		case st.Alive:
			age.Generations++
			fades.Remove(q.Entity())
		case age.Generations > 0:
			age.Generations = 0
			if a.FadeSteps > 0 {
				fades.Insert(q.Entity(), component.Fade{Steps: a.FadeSteps})
			}
		}
	}
}
