package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// WorldLogger writes structured snapshots of a world.
type WorldLogger struct {
	world  *World
	logger *zerolog.Logger
}

// NewWorldLogger binds logger to world.
func NewWorldLogger(logger *zerolog.Logger, world *World) WorldLogger {
	return WorldLogger{world: world, logger: logger}
}

func componentArray(types []reflect.Type, sizes func(reflect.Type) int) *zerolog.Array {
	arr := zerolog.Arr()
	for _, t := range types {
		d := zerolog.Dict().Str("component_name", t.String())
		if sizes != nil {
			d = d.Int("count", sizes(t))
		}
		arr = arr.Dict(d)
	}
	return arr
}

// LogWorld emits the live entity count and every registered store's size.
func (wl *WorldLogger) LogWorld(level zerolog.Level, msg string) {
	types := wl.world.ComponentTypes()
	wl.logger.WithLevel(level).
		Int("entities", wl.world.Len()).
		Int("total_components", len(types)).
		Array("components", componentArray(types, func(t reflect.Type) int {
			return wl.world.stores[t].len()
		})).
		Msg(msg)
}

// LogEntity emits e and the component types attached to it.
func (wl *WorldLogger) LogEntity(level zerolog.Level, e Entity, msg string) error {
	if !wl.world.IsLive(e) {
		return eris.Wrapf(ErrNoSuchEntity, "log entity %s", e)
	}
	wl.logger.WithLevel(level).
		Stringer("entity", e).
		Array("components", componentArray(wl.world.ComponentsOf(e), nil)).
		Msg(msg)
	return nil
}

// LogSchedule emits the systems of s in execution order.
func (wl *WorldLogger) LogSchedule(level zerolog.Level, s *Schedule, msg string) {
	arr := zerolog.Arr()
	for _, name := range s.names {
		arr = arr.Str(name)
	}
	wl.logger.WithLevel(level).
		Int("total_systems", s.Len()).
		Array("systems", arr).
		Uint64("runs", s.runs).
		Msg(msg)
}
