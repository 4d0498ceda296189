package system

import (
	"emoji-life/internal/component"
	"emoji-life/internal/ecs"
)

// TickFades decrements every afterglow by one step and removes expired ones.
func TickFades(w *ecs.World) {
	fades := ecs.StoreOf[component.Fade](w)
	var expired []ecs.Entity
	for e, f := range fades.All() {
		f.Steps--
		if f.Steps <= 0 {
			expired = append(expired, e)
		}
	}
	for _, e := range expired {
		fades.Remove(e)
	}
}

// Fading is TickFades as a schedulable system.
var Fading = ecs.Named("fading", ecs.SystemFunc(TickFades))
