package ecs

import (
	"reflect"
	"time"
)

// SetResource installs r as the world's singleton T, replacing any previous one.
func SetResource[T any](w *World, r *T) {
	w.resources[reflect.TypeFor[T]()] = r
}

// Resource returns the world's singleton T, or nil.
func Resource[T any](w *World) *T {
	r, _ := w.resources[reflect.TypeFor[T]()].(*T)
	return r
}

// RemoveResource drops the singleton T and reports whether one was present.
func RemoveResource[T any](w *World) bool {
	t := reflect.TypeFor[T]()
	if _, ok := w.resources[t]; !ok {
		return false
	}
	delete(w.resources, t)
	return true
}

// Time tracks simulation time across schedule passes.
type Time struct {
	Delta   time.Duration
	Elapsed time.Duration
	Tick    uint64
}

// Advance records one pass of length d.
func (t *Time) Advance(d time.Duration) {
	t.Delta = d
	t.Elapsed += d
	t.Tick++
}

// DeltaSeconds returns Delta in seconds.
func (t *Time) DeltaSeconds() float64 { return t.Delta.Seconds() }
