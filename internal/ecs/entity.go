package ecs

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Entity is an opaque handle for one object in a World. Index is recycled
// after a despawn; Generation changes every time it is, so a handle captured
// before a despawn/respawn cycle fails liveness checks instead of aliasing
// the newcomer.
type Entity struct {
	Index      uint32
	Generation uint32
}

// NilEntity is the zero handle. No live entity ever has it.
var NilEntity = Entity{}

// IsNil reports whether e is the zero handle.
func (e Entity) IsNil() bool { return e == NilEntity }

// String renders the handle as index:generation.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index, e.Generation)
}

// Component marks a value that can be attached to an entity. Any Go value
// qualifies; at most one value of each type lives on an entity.
type Component = any

// allocator issues entity handles and tracks which ones are live.
type allocator struct {
	generations []uint32 // current generation per index
	alive       []bool
	recycled    []uint32 // freed indices, sorted descending so the lowest pops first
	count       int
}

func newAllocator(capacity int) allocator {
	return allocator{
		generations: make([]uint32, 0, capacity),
		alive:       make([]bool, 0, capacity),
	}
}

// allocate returns a handle that is not currently live, preferring the lowest
// freed index over growing the index space.
func (a *allocator) allocate() Entity {
	var idx uint32
	if n := len(a.recycled); n > 0 {
		idx = a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
	} else {
		if uint64(len(a.generations)) >= math.MaxUint32 {
			panic("ecs: entity index space exhausted")
		}
		idx = uint32(len(a.generations))
		a.generations = append(a.generations, 1)
		a.alive = append(a.alive, false)
	}
	a.alive[idx] = true
	a.count++
	return Entity{Index: idx, Generation: a.generations[idx]}
}

func (a *allocator) isLive(e Entity) bool {
	if int(e.Index) >= len(a.generations) {
		return false
	}
	return a.alive[e.Index] && a.generations[e.Index] == e.Generation
}

// release retires e and returns its index to the pool. Dead or unknown
// handles are ignored.
func (a *allocator) release(e Entity) bool {
	if !a.isLive(e) {
		return false
	}
	if a.generations[e.Index] == math.MaxUint32 {
		panic(fmt.Sprintf("ecs: generation exhausted for entity index %d", e.Index))
	}
	a.alive[e.Index] = false
	a.generations[e.Index]++
	a.count--

	pos, _ := slices.BinarySearchFunc(a.recycled, e.Index, func(have, want uint32) int {
		return cmp.Compare(want, have)
	})
	a.recycled = slices.Insert(a.recycled, pos, e.Index)
	return true
}

func (a *allocator) live() int { return a.count }

// handle returns the live handle at idx, if any.
func (a *allocator) handle(idx int) (Entity, bool) {
	if idx < 0 || idx >= len(a.alive) || !a.alive[idx] {
		return NilEntity, false
	}
	return Entity{Index: uint32(idx), Generation: a.generations[idx]}, true
}

// reset frees every live handle, bumping generations so old handles go stale.
func (a *allocator) reset() {
	for idx := range a.alive {
		if a.alive[idx] {
			a.release(Entity{Index: uint32(idx), Generation: a.generations[idx]})
		}
	}
}
