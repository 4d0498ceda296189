package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// componentStore holds every value of one component type as a sparse set:
// sparse maps an entity index to a position in the dense owners/values
// slices. Values are boxed (a *T behind an any) so pointers handed out to
// callers survive growth of the dense slices.
type componentStore struct {
	typ    reflect.Type
	sparse []int
	owners []Entity
	values []any
}

func newComponentStore(t reflect.Type) *componentStore {
	return &componentStore{typ: t}
}

func (s *componentStore) pos(e Entity) (int, bool) {
	if int(e.Index) >= len(s.sparse) {
		return 0, false
	}
	p := s.sparse[e.Index]
	if p < 0 || s.owners[p] != e {
		return 0, false
	}
	return p, true
}

func (s *componentStore) has(e Entity) bool {
	_, ok := s.pos(e)
	return ok
}

func (s *componentStore) len() int { return len(s.owners) }

// attach appends a fresh box for e. The caller guarantees e is not present.
func (s *componentStore) attach(e Entity, box any) {
	if need := int(e.Index) + 1; need > len(s.sparse) {
		grow := need - len(s.sparse)
		for range grow {
			s.sparse = append(s.sparse, -1)
		}
	}
	s.sparse[e.Index] = len(s.owners)
	s.owners = append(s.owners, e)
	s.values = append(s.values, box)
}

// insertValue upserts a value whose static type is unknown to the caller.
// It reports whether a previous value was overwritten.
func (s *componentStore) insertValue(e Entity, v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Type() != s.typ {
		panic(fmt.Sprintf("ecs: %s value stored in %s store", rv.Type(), s.typ))
	}
	if p, ok := s.pos(e); ok {
		reflect.ValueOf(s.values[p]).Elem().Set(rv)
		return true
	}
	box := reflect.New(s.typ)
	box.Elem().Set(rv)
	s.attach(e, box.Interface())
	return false
}

// remove detaches e, returning its box. The last dense element fills the gap.
func (s *componentStore) remove(e Entity) (any, bool) {
	p, ok := s.pos(e)
	if !ok {
		return nil, false
	}
	box := s.values[p]
	last := len(s.owners) - 1
	if p != last {
		moved := s.owners[last]
		s.owners[p] = moved
		s.values[p] = s.values[last]
		s.sparse[moved.Index] = p
	}
	s.values[last] = nil
	s.owners = s.owners[:last]
	s.values = s.values[:last]
	s.sparse[e.Index] = -1
	return box, true
}

func (s *componentStore) clear() {
	for i := range s.sparse {
		s.sparse[i] = -1
	}
	clear(s.values)
	s.owners = s.owners[:0]
	s.values = s.values[:0]
}

// boxAt downcasts the box at dense position p to the concrete component type.
func boxAt[T any](s *componentStore, p int) *T {
	box, ok := s.values[p].(*T)
	if !ok {
		panic(fmt.Sprintf("ecs: %s store holds %T", s.typ, s.values[p]))
	}
	return box
}

// insertTyped upserts v, returning the overwritten value if there was one.
// The existing box is written through so outstanding pointers observe the
// new value.
func insertTyped[T any](s *componentStore, e Entity, v T) (T, bool) {
	if p, ok := s.pos(e); ok {
		box := boxAt[T](s, p)
		prev := *box
		*box = v
		return prev, true
	}
	box := new(T)
	*box = v
	s.attach(e, box)
	var zero T
	return zero, false
}

// Store is the statically typed view of one component store. Obtain it with
// StoreOf; the zero Store behaves as an empty store.
type Store[T any] struct {
	world *World
	s     *componentStore
}

// StoreOf returns the store for component type T, creating it on first use.
func StoreOf[T any](w *World) Store[T] {
	return Store[T]{world: w, s: w.store(reflect.TypeFor[T](), true)}
}

// Insert upserts v for e and returns the previous value, if any. Handles that
// are not live are ignored.
func (st Store[T]) Insert(e Entity, v T) (T, bool) {
	var zero T
	if st.s == nil || !st.world.IsLive(e) {
		return zero, false
	}
	return insertTyped(st.s, e, v)
}

// Get returns a copy of e's component.
func (st Store[T]) Get(e Entity) (T, bool) {
	if p := st.GetMut(e); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to e's component, or nil. The pointer remains
// valid until the component is removed or e is despawned.
func (st Store[T]) GetMut(e Entity) *T {
	if st.s == nil {
		return nil
	}
	p, ok := st.s.pos(e)
	if !ok {
		return nil
	}
	return boxAt[T](st.s, p)
}

// Remove detaches e's component and returns it.
func (st Store[T]) Remove(e Entity) (T, bool) {
	var zero T
	if st.s == nil {
		return zero, false
	}
	box, ok := st.s.remove(e)
	if !ok {
		return zero, false
	}
	return *box.(*T), true
}

// Has reports whether e holds a T.
func (st Store[T]) Has(e Entity) bool {
	return st.s != nil && st.s.has(e)
}

// Len returns the number of entities holding a T.
func (st Store[T]) Len() int {
	if st.s == nil {
		return 0
	}
	return st.s.len()
}

// All yields every (entity, component) pair once. The sequence is valid only
// while no component of this type is added or removed.
func (st Store[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		if st.s == nil {
			return
		}
		for i := 0; i < len(st.s.owners); i++ {
			if !yield(st.s.owners[i], boxAt[T](st.s, i)) {
				return
			}
		}
	}
}

// Entities returns a snapshot of the entities holding a T.
func (st Store[T]) Entities() []Entity {
	if st.s == nil {
		return nil
	}
	out := make([]Entity, len(st.s.owners))
	copy(out, st.s.owners)
	return out
}
