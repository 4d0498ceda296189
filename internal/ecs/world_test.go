package ecs

import (
	"math/rand"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y int }

type velocity struct{ DX, DY int }

type health struct{ HP int }

func TestSpawnIssuesLiveEntity(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().Build()

	require.False(t, e.IsNil())
	require.True(t, w.IsLive(e))
	require.Equal(t, 1, w.Len())
	require.False(t, w.IsLive(NilEntity))
}

func TestEntitiesUniqueUnderChurn(t *testing.T) {
	w := NewWorld()
	rng := rand.New(rand.NewSource(1))
	var live []Entity

	for range 2000 {
		if len(live) > 0 && rng.Intn(3) == 0 {
			i := rng.Intn(len(live))
			require.True(t, w.Despawn(live[i]))
			live = append(live[:i], live[i+1:]...)
			continue
		}
		e := w.Spawn().Build()
		for _, other := range live {
			require.NotEqual(t, other, e, "live handle issued twice")
			require.NotEqual(t, other.Index, e.Index, "live index issued twice")
		}
		live = append(live, e)
	}
	require.Equal(t, len(live), w.Len())
}

func TestAddAndGetComponent(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().Build()
	AddComponent(w, e, position{X: 1, Y: 2})

	got, ok := GetComponent[position](w, e)
	require.True(t, ok)
	require.Equal(t, position{X: 1, Y: 2}, got)

	_, ok = GetComponent[velocity](w, e)
	require.False(t, ok, "never-registered type must read as absent")
}

func TestAddOverwrites(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().Build()
	AddComponent(w, e, position{X: 1, Y: 1})
	AddComponent(w, e, position{X: 9, Y: 9})

	got, _ := GetComponent[position](w, e)
	require.Equal(t, position{X: 9, Y: 9}, got)
	require.Equal(t, 1, StoreOf[position](w).Len())
}

func TestStoreInsertReportsPrevious(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().Build()
	st := StoreOf[health](w)

	_, replaced := st.Insert(e, health{HP: 3})
	require.False(t, replaced)
	prev, replaced := st.Insert(e, health{HP: 5})
	require.True(t, replaced)
	require.Equal(t, health{HP: 3}, prev)
}

func TestOverwriteKeepsPointerIdentity(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().Build()
	AddComponent(w, e, health{HP: 1})
	p := GetComponentMut[health](w, e)

	AddComponent(w, e, health{HP: 2})
	require.Equal(t, 2, p.HP)

	p.HP = 7
	got, _ := GetComponent[health](w, e)
	require.Equal(t, 7, got.HP)
}

func TestPointersSurviveStoreGrowth(t *testing.T) {
	w := NewWorld()
	first := w.Spawn().With(position{X: 42}).Build()
	p := GetComponentMut[position](w, first)

	for i := range 1000 {
		w.Spawn().With(position{X: i})
	}
	require.Equal(t, 42, p.X)
	require.Same(t, p, GetComponentMut[position](w, first))
}

func TestRemoveComponent(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().With(position{X: 3}).With(velocity{DX: 1}).Build()

	got, ok := RemoveComponent[position](w, e)
	require.True(t, ok)
	require.Equal(t, 3, got.X)
	require.False(t, HasComponent[position](w, e))
	require.True(t, HasComponent[velocity](w, e))

	_, ok = RemoveComponent[position](w, e)
	require.False(t, ok)
}

func TestRemoveKeepsOtherEntitiesIntact(t *testing.T) {
	w := NewWorld()
	a := w.Spawn().With(position{X: 1}).Build()
	b := w.Spawn().With(position{X: 2}).Build()
	c := w.Spawn().With(position{X: 3}).Build()

	RemoveComponent[position](w, a)

	got, _ := GetComponent[position](w, b)
	require.Equal(t, 2, got.X)
	got, _ = GetComponent[position](w, c)
	require.Equal(t, 3, got.X)
	require.Equal(t, 2, StoreOf[position](w).Len())
}

func TestDespawnRemovesComponents(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().With(position{X: 7}).With(health{HP: 1}).Build()

	require.True(t, w.Despawn(e))
	require.False(t, w.IsLive(e))
	require.False(t, HasComponent[position](w, e))
	require.False(t, HasComponent[health](w, e))
	require.Zero(t, StoreOf[position](w).Len())
	require.Zero(t, StoreOf[health](w).Len())
}

func TestDespawnIsIdempotent(t *testing.T) {
	w := NewWorld()
	keep := w.Spawn().With(position{X: 1}).Build()
	e := w.Spawn().Build()

	require.True(t, w.Despawn(e))
	require.False(t, w.Despawn(e))
	require.False(t, w.Despawn(Entity{Index: 99, Generation: 1}), "never spawned")

	require.Equal(t, 1, w.Len())
	require.True(t, w.IsLive(keep))
	require.True(t, HasComponent[position](w, keep))
}

func TestLowestFreedIndexReusedFirst(t *testing.T) {
	w := NewWorld()
	var es []Entity
	for range 5 {
		es = append(es, w.Spawn().Build())
	}
	w.Despawn(es[3])
	w.Despawn(es[1])

	a := w.Spawn().Build()
	b := w.Spawn().Build()
	c := w.Spawn().Build()
	require.Equal(t, uint32(1), a.Index)
	require.Equal(t, uint32(3), b.Index)
	require.Equal(t, uint32(5), c.Index)
}

func TestStaleHandleRejected(t *testing.T) {
	w := NewWorld()
	old := w.Spawn().With(position{X: 1}).Build()
	w.Despawn(old)
	fresh := w.Spawn().With(position{X: 2}).Build()

	require.Equal(t, old.Index, fresh.Index)
	require.NotEqual(t, old.Generation, fresh.Generation)
	require.False(t, w.IsLive(old))

	_, ok := GetComponent[position](w, old)
	require.False(t, ok, "stale handle must not see the new occupant")

	AddComponent(w, old, position{X: 99})
	got, _ := GetComponent[position](w, fresh)
	require.Equal(t, 2, got.X)
	require.False(t, w.Despawn(old))
	require.True(t, w.IsLive(fresh))
}

func TestAddToDeadEntityIsNoop(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().Build()
	w.Despawn(e)

	AddComponent(w, e, position{X: 1})
	w.Add(e, velocity{})
	require.Zero(t, StoreOf[position](w).Len())
	require.Zero(t, StoreOf[velocity](w).Len())

	_, replaced := StoreOf[position](w).Insert(e, position{})
	require.False(t, replaced)
	require.Zero(t, StoreOf[position](w).Len())
}

func TestTryAddComponentReportsDeadHandle(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().Build()
	require.NoError(t, TryAddComponent(w, e, health{HP: 1}))

	w.Despawn(e)
	err := TryAddComponent(w, e, health{HP: 2})
	require.Error(t, err)
	require.True(t, eris.Is(err, ErrNoSuchEntity))
}

func TestBuilderWith(t *testing.T) {
	w := NewWorld()
	b := w.Spawn().With(position{X: 1, Y: 2})
	b = WithComponent(b, health{HP: 10})
	e := b.Build()

	require.Equal(t, e, b.Build(), "build is repeatable")
	pos, ok := GetComponent[position](w, e)
	require.True(t, ok)
	require.Equal(t, position{X: 1, Y: 2}, pos)
	hp, ok := GetComponent[health](w, e)
	require.True(t, ok)
	require.Equal(t, 10, hp.HP)
}

func TestBuilderWithNilIgnored(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().With(nil).Build()
	require.True(t, w.IsLive(e))
	require.Empty(t, w.ComponentsOf(e))
}

func TestComponentTypesSorted(t *testing.T) {
	w := NewWorld()
	Register[velocity](w)
	w.Spawn().With(position{}).With(health{})

	var names []string
	for _, ty := range w.ComponentTypes() {
		names = append(names, ty.String())
	}
	require.Equal(t, []string{"ecs.health", "ecs.position", "ecs.velocity"}, names)
}

func TestEntitiesYieldsLiveInIndexOrder(t *testing.T) {
	w := NewWorld()
	a := w.Spawn().Build()
	b := w.Spawn().Build()
	c := w.Spawn().Build()
	w.Despawn(b)

	var got []Entity
	for e := range w.Entities() {
		got = append(got, e)
	}
	require.Equal(t, []Entity{a, c}, got)
}

func TestClearDespawnsEverything(t *testing.T) {
	w := NewWorld()
	a := w.Spawn().With(position{}).Build()
	w.Spawn().With(position{}).With(health{})
	SetResource(w, &Time{})

	w.Clear()
	require.Zero(t, w.Len())
	require.False(t, w.IsLive(a))
	require.Zero(t, StoreOf[position](w).Len())
	require.NotNil(t, Resource[Time](w), "resources survive a clear")

	e := w.Spawn().Build()
	require.Equal(t, uint32(0), e.Index)
	require.NotEqual(t, a.Generation, e.Generation)
}

func TestStoreAllVisitsEachOnce(t *testing.T) {
	w := NewWorld()
	want := map[Entity]int{}
	for i := range 10 {
		e := w.Spawn().With(position{X: i}).Build()
		want[e] = i
	}

	got := map[Entity]int{}
	for e, p := range StoreOf[position](w).All() {
		_, dup := got[e]
		require.False(t, dup)
		got[e] = p.X
	}
	require.Equal(t, want, got)
}

func TestStoreAllStopsEarly(t *testing.T) {
	w := NewWorld()
	for range 5 {
		w.Spawn().With(position{})
	}
	n := 0
	for range StoreOf[position](w).All() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestPositionCellScenario(t *testing.T) {
	type cellState struct{ Alive bool }

	w := NewWorld()
	e := w.Spawn().With(position{X: 1, Y: 2}).With(cellState{Alive: true}).Build()

	pos, ok := GetComponent[position](w, e)
	require.True(t, ok)
	require.Equal(t, position{X: 1, Y: 2}, pos)
	st, ok := GetComponent[cellState](w, e)
	require.True(t, ok)
	require.True(t, st.Alive)

	w.Despawn(e)
	_, ok = GetComponent[position](w, e)
	require.False(t, ok)
	_, ok = GetComponent[cellState](w, e)
	require.False(t, ok)
}
