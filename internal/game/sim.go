package game

import (
	"math/rand"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"emoji-life/internal/config"
	"emoji-life/internal/ecs"
	"emoji-life/internal/factory"
	"emoji-life/internal/grid"
	"emoji-life/internal/pattern"
	"emoji-life/internal/system"
)

// Sim owns one world and the schedule that advances it. It is not safe for
// concurrent use; callers serialise access.
type Sim struct {
	world    *ecs.World
	schedule *ecs.Schedule
	board    *factory.Board
	clock    *system.Clock

	initial pattern.Pattern
	soup    bool
	density float64
	spawn   pattern.Pattern
	seed    int64
	rng     *rand.Rand
	logger  zerolog.Logger
}

// NewSim builds the board described by cfg and seeds it. Pattern names are
// resolved against patterns.
func NewSim(cfg config.Config, patterns *pattern.Set, logger zerolog.Logger) (*Sim, error) {
	s := &Sim{
		soup:    cfg.Pattern == "" || cfg.Pattern == config.SoupPattern,
		density: cfg.Density,
		seed:    cfg.Seed,
		logger:  logger,
	}
	if !s.soup {
		p, ok := patterns.Lookup(cfg.Pattern)
		if !ok {
			return nil, eris.Errorf("unknown pattern %q", cfg.Pattern)
		}
		s.initial = p
	}
	spawn, ok := patterns.Lookup(cfg.SpawnPattern)
	if !ok {
		return nil, eris.Errorf("unknown spawn pattern %q", cfg.SpawnPattern)
	}
	s.spawn = spawn
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(s.seed))

	g := cfg.Grid()
	s.world = ecs.NewWorld(ecs.WithLogger(logger), ecs.WithCapacity(g.Size()))
	s.board = factory.SetupGrid(s.world, g, nil)
	ecs.SetResource(s.world, &system.Stats{})
	ecs.SetResource(s.world, &ecs.Time{})

	s.clock = &system.Clock{Step: cfg.Tick()}
	s.schedule = ecs.NewSchedule(ecs.WithScheduleLogger(logger)).
		Add(s.clock).
		Add(&system.Life{Grid: g}).
		Add(system.Fading).
		Add(system.Aging{FadeSteps: cfg.FadeSteps})
	if cfg.SpawnEvery > 0 {
		s.schedule.Add(&system.Spawner{Grid: g, Every: uint64(cfg.SpawnEvery), Pattern: s.spawn, Rand: s.rng})
	}
	s.schedule.Add(ecs.Named("census", ecs.SystemFunc(system.Census)))

	s.Reseed()
	wl := ecs.NewWorldLogger(&logger, s.world)
	wl.LogWorld(zerolog.DebugLevel, "world ready")
	wl.LogSchedule(zerolog.DebugLevel, s.schedule, "schedule ready")
	return s, nil
}

// World exposes the simulated world.
func (s *Sim) World() *ecs.World { return s.world }

// Schedule exposes the per-generation systems.
func (s *Sim) Schedule() *ecs.Schedule { return s.schedule }

// Grid returns the board geometry.
func (s *Sim) Grid() grid.Grid { return s.board.Grid }

// Seed returns the random seed in use.
func (s *Sim) Seed() int64 { return s.seed }

// PatternName names the initial population.
func (s *Sim) PatternName() string {
	if s.soup {
		return config.SoupPattern
	}
	return s.initial.Name
}

// Stats returns a copy of the current statistics.
func (s *Sim) Stats() system.Stats { return *ecs.Resource[system.Stats](s.world) }

// Step advances one generation.
func (s *Sim) Step() { s.schedule.Run(s.world) }

// SetInterval changes the simulated time each generation represents.
func (s *Sim) SetInterval(d time.Duration) { s.clock.Step = d }

// Reseed restores the initial population and resets statistics.
func (s *Sim) Reseed() {
	var cells []grid.Point
	if s.soup {
		cells = pattern.Soup(s.board.Grid, s.density, s.rng)
	} else {
		cells = s.initial.Centered(s.board.Grid)
	}
	n := factory.Reseed(s.world, cells)
	*ecs.Resource[system.Stats](s.world) = system.Stats{}
	system.Census(s.world)
	s.logger.Debug().Str("pattern", s.PatternName()).Int("cells", n).Msg("reseeded")
}

// Drop stamps the spawn pattern at a random spot and returns how many cells
// it brought to life.
func (s *Sim) Drop() int {
	n := system.Drop(s.world, s.board.Grid, s.spawn, s.rng)
	ecs.Resource[system.Stats](s.world).Spawned += n
	system.Census(s.world)
	return n
}

// Clear kills every cell.
func (s *Sim) Clear() {
	factory.Kill(s.world)
	system.Census(s.world)
}
