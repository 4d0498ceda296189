// Package bench measures the ECS kernel under entity churn and the life
// systems under sustained stepping.
package bench

import (
	"math/rand"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"emoji-life/internal/ecs"
	"emoji-life/internal/factory"
	"emoji-life/internal/grid"
	"emoji-life/internal/pattern"
	"emoji-life/internal/system"
)

// Profile modes accepted by Options.Profile.
const (
	ProfileNone   = ""
	ProfileCPU    = "cpu"
	ProfileMem    = "mem"
	ProfileAllocs = "allocs"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

// Options controls a benchmark run.
type Options struct {
	Entities    int
	Rounds      int
	Generations int
	Width       int
	Height      int
	Seed        int64
	Profile     string
	ProfileDir  string
}

// DefaultOptions returns a run that finishes in about a second.
func DefaultOptions() Options {
	return Options{
		Entities:    1000,
		Rounds:      200,
		Generations: 200,
		Width:       64,
		Height:      64,
		Seed:        1,
		ProfileDir:  ".",
	}
}

// Result summarises a run.
type Result struct {
	Ops          int
	ChurnElapsed time.Duration
	Generations  int
	LifeElapsed  time.Duration
	Population   int
	Leaked       int
}

// OpsPerSecond is the churn throughput.
func (r Result) OpsPerSecond() float64 {
	if r.ChurnElapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.ChurnElapsed.Seconds()
}

// GenerationsPerSecond is the life stepping throughput.
func (r Result) GenerationsPerSecond() float64 {
	if r.LifeElapsed <= 0 {
		return 0
	}
	return float64(r.Generations) / r.LifeElapsed.Seconds()
}

func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case ProfileNone:
		return nil, nil
	case ProfileCPU:
		return profile.CPUProfile, nil
	case ProfileMem:
		return profile.MemProfile, nil
	case ProfileAllocs:
		return profile.MemProfileAllocs, nil
	}
	return nil, eris.Errorf("unknown profile mode %q", name)
}

// Run executes the churn and life benchmarks, profiling both when
// opts.Profile names a mode.
func Run(opts Options, logger zerolog.Logger) (Result, error) {
	if opts.Entities < 1 || opts.Rounds < 1 {
		return Result{}, eris.Errorf("entities and rounds must be positive, got %d and %d", opts.Entities, opts.Rounds)
	}
	mode, err := profileMode(opts.Profile)
	if err != nil {
		return Result{}, err
	}
	if mode != nil {
		p := profile.Start(mode, profile.ProfilePath(opts.ProfileDir), profile.NoShutdownHook, profile.Quiet)
		defer p.Stop()
		logger.Info().Str("mode", opts.Profile).Str("dir", opts.ProfileDir).Msg("profiling")
	}

	var res Result
	res.Ops, res.Leaked, res.ChurnElapsed = churn(opts.Rounds, opts.Entities)
	logger.Info().
		Int("ops", res.Ops).
		Dur("elapsed", res.ChurnElapsed).
		Float64("ops_per_sec", res.OpsPerSecond()).
		Msg("churn done")

	if opts.Generations > 0 {
		g := grid.New(max(opts.Width, 3), max(opts.Height, 3), true)
		res.Generations = opts.Generations
		res.Population, res.LifeElapsed = life(g, opts.Generations, opts.Seed)
		logger.Info().
			Int("generations", res.Generations).
			Int("population", res.Population).
			Float64("generations_per_sec", res.GenerationsPerSecond()).
			Msg("life done")
	}
	return res, nil
}

// churn spawns, updates, and despawns numEntities per round, counting one
// op per spawn, query visit, and despawn. It returns the ops performed and
// the entities still live at the end.
func churn(rounds, numEntities int) (int, int, time.Duration) {
	w := ecs.NewWorld(ecs.WithCapacity(numEntities))
	entities := make([]ecs.Entity, 0, numEntities)
	ops := 0

	start := time.Now()
	for range rounds {
		for i := range numEntities {
			w.Spawn().With(comp1{V: int64(i)}).With(comp2{V: 1, W: 2})
			ops++
		}
		entities = entities[:0]
		q := ecs.NewQuery2[comp1, comp2](w)
		for q.Next() {
			a, b := q.Get()
			a.V += b.V
			a.W += b.W
			entities = append(entities, q.Entity())
			ops++
		}
		for _, e := range entities {
			w.Despawn(e)
			ops++
		}
	}
	return ops, w.Len(), time.Since(start)
}

// life steps a soup seeded board for generations and returns the final
// population.
func life(g grid.Grid, generations int, seed int64) (int, time.Duration) {
	w := ecs.NewWorld(ecs.WithCapacity(g.Size()))
	rng := rand.New(rand.NewSource(seed))
	factory.SetupGrid(w, g, pattern.Soup(g, 0.3, rng))
	ecs.SetResource(w, &system.Stats{})

	s := ecs.NewSchedule().
		Add(&system.Life{Grid: g}).
		Add(ecs.Named("census", ecs.SystemFunc(system.Census)))

	start := time.Now()
	for range generations {
		s.Run(w)
	}
	return ecs.Resource[system.Stats](w).Population, time.Since(start)
}
