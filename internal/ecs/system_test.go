package ecs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// callLog is a world resource recording which systems ran.
type callLog []string

type recorder struct{ name string }

func (r recorder) Run(w *World) {
	log := Resource[callLog](w)
	*log = append(*log, r.name)
}

func newLoggedWorld() *World {
	w := NewWorld()
	SetResource(w, &callLog{})
	return w
}

func TestScheduleRunsInRegistrationOrder(t *testing.T) {
	s := NewSchedule().
		Add(recorder{"S1"}).
		Add(recorder{"S2"}).
		Add(recorder{"S3"})

	w := newLoggedWorld()
	s.Run(w)
	require.Equal(t, callLog{"S1", "S2", "S3"}, *Resource[callLog](w))

	s.Run(w)
	require.Equal(t, callLog{"S1", "S2", "S3", "S1", "S2", "S3"}, *Resource[callLog](w))
	require.Equal(t, uint64(2), s.Runs())
}

func TestScheduleIgnoresNil(t *testing.T) {
	s := NewSchedule().Add(nil)
	require.Zero(t, s.Len())
	s.Run(NewWorld())
}

func TestEmptyScheduleLeavesWorldUnchanged(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().With(position{X: 1}).Build()
	NewSchedule().Run(w)

	got, _ := GetComponent[position](w, e)
	require.Equal(t, 1, got.X)
	require.Equal(t, 1, w.Len())
}

func TestSystemMutatesWorld(t *testing.T) {
	w := NewWorld()
	e := w.Spawn().With(position{X: 1}).With(velocity{DX: 1}).Build()

	move := SystemFunc(func(w *World) {
		q := NewQuery2[position, velocity](w)
		for q.Next() {
			p, v := q.Get()
			p.X += v.DX
		}
	})
	s := NewSchedule().Add(move)
	for range 3 {
		s.Run(w)
	}
	got, _ := GetComponent[position](w, e)
	require.Equal(t, 4, got.X)
}

func TestSystemNames(t *testing.T) {
	s := NewSchedule().
		Add(Named("census", SystemFunc(func(*World) {}))).
		Add(recorder{"x"}).
		Add(&recorder{"y"})

	require.Equal(t, []string{"census", "recorder", "recorder"}, s.Names())
	require.Contains(t, SystemName(SystemFunc(noop)), "noop")
}

func noop(*World) {}

func TestScheduleTracesSystems(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	s := NewSchedule(WithScheduleLogger(logger)).Add(Named("life", SystemFunc(noop)))

	s.Run(NewWorld())
	out := buf.String()
	require.Contains(t, out, `"system":"life"`)
	require.Contains(t, out, `"run":1`)
}

func TestPanickingSystemAbortsRun(t *testing.T) {
	s := NewSchedule().
		Add(recorder{"before"}).
		Add(SystemFunc(func(*World) { panic("boom") })).
		Add(recorder{"after"})

	w := newLoggedWorld()
	require.Panics(t, func() { s.Run(w) })
	require.Equal(t, callLog{"before"}, *Resource[callLog](w))
}

func TestResources(t *testing.T) {
	w := NewWorld()
	require.Nil(t, Resource[Time](w))

	SetResource(w, &Time{})
	tm := Resource[Time](w)
	require.NotNil(t, tm)
	tm.Advance(250_000_000)
	tm.Advance(250_000_000)
	require.Equal(t, uint64(2), Resource[Time](w).Tick)
	require.InDelta(t, 0.25, tm.DeltaSeconds(), 1e-9)
	require.Equal(t, 0.5, tm.Elapsed.Seconds())

	require.True(t, RemoveResource[Time](w))
	require.False(t, RemoveResource[Time](w))
}

func TestWorldLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	w := NewWorld()
	e := w.Spawn().With(position{}).With(health{}).Build()
	wl := NewWorldLogger(&logger, w)

	wl.LogWorld(zerolog.InfoLevel, "world")
	require.Contains(t, buf.String(), `"entities":1`)
	require.Contains(t, buf.String(), `"component_name":"ecs.position"`)

	buf.Reset()
	require.NoError(t, wl.LogEntity(zerolog.InfoLevel, e, "entity"))
	require.Contains(t, buf.String(), `"component_name":"ecs.health"`)

	w.Despawn(e)
	require.Error(t, wl.LogEntity(zerolog.InfoLevel, e, "gone"))

	buf.Reset()
	wl.LogSchedule(zerolog.InfoLevel, NewSchedule().Add(Named("life", SystemFunc(noop))), "schedule")
	require.True(t, strings.Contains(buf.String(), `"systems":["life"]`))
}

func TestScheduleMovesAliveCells(t *testing.T) {
	type cellState struct{ Alive bool }

	w := NewWorld()
	alive := w.Spawn().With(position{}).With(cellState{Alive: true}).Build()
	dead := w.Spawn().With(position{}).With(cellState{}).Build()

	step := SystemFunc(func(w *World) {
		q := NewQuery2[position, cellState](w)
		for q.Next() {
			if p, st := q.Get(); st.Alive {
				p.X++
			}
		}
	})
	NewSchedule().Add(step).Run(w)

	got, _ := GetComponent[position](w, alive)
	require.Equal(t, position{X: 1, Y: 0}, got)
	got, _ = GetComponent[position](w, dead)
	require.Equal(t, position{}, got)
}
