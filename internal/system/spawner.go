package system

import (
	"math/rand"

	"emoji-life/internal/ecs"
	"emoji-life/internal/factory"
	"emoji-life/internal/grid"
	"emoji-life/internal/pattern"
)

// Spawner drops Pattern at a random spot every Every ticks of the world's
// Time resource. It does nothing without a Time resource or when Every is
// not positive.
type Spawner struct {
	Grid    grid.Grid
	Every   uint64
	Pattern pattern.Pattern
	Rand    *rand.Rand
}

// Name implements the schedule's naming hook.
func (*Spawner) Name() string { return "spawner" }

// Run implements ecs.System.
func (s *Spawner) Run(w *ecs.World) {
	tm := ecs.Resource[ecs.Time](w)
	if tm == nil || s.Every == 0 || tm.Tick == 0 || tm.Tick%s.Every != 0 {
		return
	}
	n := Drop(w, s.Grid, s.Pattern, s.Rand)
	if stats := ecs.Resource[Stats](w); stats != nil {
		stats.Spawned += n
	}
	w.Logger().Debug().Str("pattern", s.Pattern.Name).Int("cells", n).Uint64("tick", tm.Tick).Msg("spawned pattern")
}

// Drop stamps p at a random origin on g and returns how many cells it
// brought to life.
func Drop(w *ecs.World, g grid.Grid, p pattern.Pattern, rng *rand.Rand) int {
	pw, ph := p.Size()
	origin := grid.Point{
		X: rng.Intn(max(g.Width-pw, 0) + 1),
		Y: rng.Intn(max(g.Height-ph, 0) + 1),
	}
	return factory.Stamp(w, p.At(g, origin))
}
