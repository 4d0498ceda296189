package ecs

import (
	"path/filepath"
	"reflect"
	"runtime"
	"slices"

	"github.com/rs/zerolog"
)

// System is one unit of per-tick behaviour. Implementations receive the
// world exclusively for the duration of Run.
type System interface {
	Run(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

// Run calls f(w).
func (f SystemFunc) Run(w *World) { f(w) }

type namedSystem struct {
	System
	name string
}

func (n namedSystem) Name() string { return n.name }

// Named attaches a display name to s for logs and HUDs.
func Named(name string, s System) System {
	return namedSystem{System: s, name: name}
}

// SystemName derives a display name for s: an explicit Name() when present,
// the function name for a SystemFunc, otherwise the type name.
func SystemName(s System) string {
	switch v := s.(type) {
	case interface{ Name() string }:
		return v.Name()
	case SystemFunc:
		return filepath.Base(runtime.FuncForPC(reflect.ValueOf(v).Pointer()).Name())
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Schedule runs systems in the order they were added.
type Schedule struct {
	systems []System
	names   []string
	logger  zerolog.Logger
	runs    uint64
}

// ScheduleOption configures a Schedule.
type ScheduleOption func(*Schedule)

// WithScheduleLogger traces each system execution to l.
func WithScheduleLogger(l zerolog.Logger) ScheduleOption {
	return func(s *Schedule) { s.logger = l }
}

// NewSchedule creates an empty Schedule.
func NewSchedule(opts ...ScheduleOption) *Schedule {
	s := &Schedule{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends sys. Nil systems are ignored.
func (s *Schedule) Add(sys System) *Schedule {
	if sys == nil {
		return s
	}
	s.systems = append(s.systems, sys)
	s.names = append(s.names, SystemName(sys))
	return s
}

// Run executes every system exactly once, in registration order. A panicking
// system aborts the pass.
func (s *Schedule) Run(w *World) {
	s.runs++
	for i, sys := range s.systems {
		s.logger.Trace().Uint64("run", s.runs).Str("system", s.names[i]).Msg("running system")
		sys.Run(w)
	}
}

// Len returns the number of systems.
func (s *Schedule) Len() int { return len(s.systems) }

// Names returns system names in execution order.
func (s *Schedule) Names() []string { return slices.Clone(s.names) }

// Runs returns how many passes have completed or started.
func (s *Schedule) Runs() uint64 { return s.runs }
