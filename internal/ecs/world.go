package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// World is the central entity registry and component store.
type World struct {
	entities  allocator
	stores    map[reflect.Type]*componentStore
	order     []*componentStore // creation order
	resources map[reflect.Type]any
	logger    zerolog.Logger
	capacity  int
}

// Option configures a World.
type Option func(*World)

// WithLogger routes world diagnostics to l.
func WithLogger(l zerolog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithCapacity preallocates room for n entities.
func WithCapacity(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.capacity = n
		}
	}
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		stores:    make(map[reflect.Type]*componentStore),
		resources: make(map[reflect.Type]any),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.entities = newAllocator(w.capacity)
	return w
}

// Logger returns the world's logger.
func (w *World) Logger() *zerolog.Logger { return &w.logger }

// Spawn allocates a fresh entity and returns a builder for attaching its
// components.
func (w *World) Spawn() EntityBuilder {
	e := w.entities.allocate()
	w.logger.Trace().Stringer("entity", e).Msg("spawned")
	return EntityBuilder{world: w, entity: e}
}

// Despawn removes e from every store and frees its index. It reports false,
// and does nothing, when e is not live.
func (w *World) Despawn(e Entity) bool {
	if !w.entities.isLive(e) {
		return false
	}
	for _, s := range w.order {
		s.remove(e)
	}
	w.entities.release(e)
	w.logger.Trace().Stringer("entity", e).Msg("despawned")
	return true
}

// Clear despawns every entity. Stores and resources survive.
func (w *World) Clear() {
	for _, s := range w.order {
		s.clear()
	}
	w.entities.reset()
}

// IsLive reports whether e is currently live.
func (w *World) IsLive(e Entity) bool {
	return w.entities.isLive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.entities.live() }

// Entities yields every live entity in index order.
func (w *World) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for idx := range w.entities.alive {
			e, ok := w.entities.handle(idx)
			if !ok {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// ComponentTypes lists every registered component type, sorted by name.
func (w *World) ComponentTypes() []reflect.Type {
	out := make([]reflect.Type, 0, len(w.order))
	for _, s := range w.order {
		out = append(out, s.typ)
	}
	slices.SortFunc(out, func(a, b reflect.Type) int {
		return cmp.Compare(a.String(), b.String())
	})
	return out
}

// ComponentsOf lists the component types attached to e, sorted by name.
func (w *World) ComponentsOf(e Entity) []reflect.Type {
	if !w.IsLive(e) {
		return nil
	}
	var out []reflect.Type
	for _, t := range w.ComponentTypes() {
		if w.stores[t].has(e) {
			out = append(out, t)
		}
	}
	return out
}

// Add attaches c to e, keyed by c's dynamic type. An existing component of
// that type is overwritten. Nil components and dead handles are ignored.
func (w *World) Add(e Entity, c Component) {
	if c == nil || !w.IsLive(e) {
		return
	}
	w.store(reflect.TypeOf(c), true).insertValue(e, c)
}

func (w *World) store(t reflect.Type, create bool) *componentStore {
	if s, ok := w.stores[t]; ok {
		return s
	}
	if !create {
		return nil
	}
	s := newComponentStore(t)
	w.stores[t] = s
	w.order = append(w.order, s)
	w.logger.Debug().Str("component", t.String()).Msg("registered component store")
	return s
}

// Register creates the store for T ahead of first use.
func Register[T any](w *World) {
	w.store(reflect.TypeFor[T](), true)
}

// AddComponent attaches v to e, overwriting any existing T. It is a no-op
// when e is not live.
func AddComponent[T any](w *World, e Entity, v T) {
	if !w.IsLive(e) {
		return
	}
	insertTyped(w.store(reflect.TypeFor[T](), true), e, v)
}

// TryAddComponent is AddComponent that reports dead handles.
func TryAddComponent[T any](w *World, e Entity, v T) error {
	if !w.IsLive(e) {
		return eris.Wrapf(ErrNoSuchEntity, "add %s to entity %s", reflect.TypeFor[T](), e)
	}
	insertTyped(w.store(reflect.TypeFor[T](), true), e, v)
	return nil
}

// GetComponent returns a copy of e's T.
func GetComponent[T any](w *World, e Entity) (T, bool) {
	if p := GetComponentMut[T](w, e); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// GetComponentMut returns a pointer to e's T, or nil.
func GetComponentMut[T any](w *World, e Entity) *T {
	if !w.IsLive(e) {
		return nil
	}
	return Store[T]{world: w, s: w.store(reflect.TypeFor[T](), false)}.GetMut(e)
}

// HasComponent reports whether e holds a T.
func HasComponent[T any](w *World, e Entity) bool {
	return GetComponentMut[T](w, e) != nil
}

// RemoveComponent detaches e's T and returns it.
func RemoveComponent[T any](w *World, e Entity) (T, bool) {
	if !w.IsLive(e) {
		var zero T
		return zero, false
	}
	return Store[T]{world: w, s: w.store(reflect.TypeFor[T](), false)}.Remove(e)
}
