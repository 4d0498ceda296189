package ecs

import "reflect"

// smallest returns the store with the fewest entries, or nil when any store
// is missing (nothing can match).
func smallest(stores ...*componentStore) *componentStore {
	var best *componentStore
	for _, s := range stores {
		if s == nil {
			return nil
		}
		if best == nil || s.len() < best.len() {
			best = s
		}
	}
	return best
}

// cursor walks the dense entries of the driving store.
type cursor struct {
	drive *componentStore
	idx   int
	cur   Entity
}

func (c *cursor) reset(drive *componentStore) {
	c.drive = drive
	c.idx = -1
	c.cur = NilEntity
}

// advance moves to the next driving entry and returns its owner.
func (c *cursor) advance() (Entity, bool) {
	if c.drive == nil {
		return NilEntity, false
	}
	if c.idx+1 >= len(c.drive.owners) {
		c.idx = len(c.drive.owners)
		return NilEntity, false
	}
	c.idx++
	return c.drive.owners[c.idx], true
}

// Query1 iterates entities holding an A.
type Query1[A any] struct {
	w *World
	a *componentStore
	cursor
	curA *A
}

// NewQuery1 creates a cursor over entities holding an A.
func NewQuery1[A any](w *World) *Query1[A] {
	q := &Query1[A]{w: w}
	q.Reset()
	return q
}

// Reset rewinds the cursor and picks up stores created since the last pass.
func (q *Query1[A]) Reset() {
	q.a = q.w.store(reflect.TypeFor[A](), false)
	q.reset(q.a)
	q.curA = nil
}

// Next advances to the next match.
func (q *Query1[A]) Next() bool {
	e, ok := q.advance()
	if !ok {
		return false
	}
	q.cur = e
	q.curA = boxAt[A](q.a, q.idx)
	return true
}

// Entity returns the current match.
func (q *Query1[A]) Entity() Entity { return q.cur }

// Get returns the current match's component.
func (q *Query1[A]) Get() *A { return q.curA }

// Count returns the number of matches and rewinds the cursor.
func (q *Query1[A]) Count() int {
	q.Reset()
	n := 0
	for q.Next() {
		n++
	}
	q.Reset()
	return n
}

// Query2 iterates entities holding both an A and a B.
type Query2[A, B any] struct {
	w    *World
	a, b *componentStore
	cursor
	curA *A
	curB *B
}

// NewQuery2 creates a cursor over entities holding an A and a B.
func NewQuery2[A, B any](w *World) *Query2[A, B] {
	q := &Query2[A, B]{w: w}
	q.Reset()
	return q
}

// Reset rewinds the cursor and picks up stores created since the last pass.
func (q *Query2[A, B]) Reset() {
	q.a = q.w.store(reflect.TypeFor[A](), false)
	q.b = q.w.store(reflect.TypeFor[B](), false)
	q.reset(smallest(q.a, q.b))
	q.curA, q.curB = nil, nil
}

// Next advances to the next match.
func (q *Query2[A, B]) Next() bool {
	for {
		e, ok := q.advance()
		if !ok {
			return false
		}
		pa, ok := q.a.pos(e)
		if !ok {
			continue
		}
		pb, ok := q.b.pos(e)
		if !ok {
			continue
		}
		q.cur = e
		q.curA = boxAt[A](q.a, pa)
		q.curB = boxAt[B](q.b, pb)
		return true
	}
}

// Entity returns the current match.
func (q *Query2[A, B]) Entity() Entity { return q.cur }

// Get returns the current match's components.
func (q *Query2[A, B]) Get() (*A, *B) { return q.curA, q.curB }

// Count returns the number of matches and rewinds the cursor.
func (q *Query2[A, B]) Count() int {
	q.Reset()
	n := 0
	for q.Next() {
		n++
	}
	q.Reset()
	return n
}

// Query3 iterates entities holding an A, a B and a C.
type Query3[A, B, C any] struct {
	w       *World
	a, b, c *componentStore
	cursor
	curA *A
	curB *B
	curC *C
}

// NewQuery3 creates a cursor over entities holding an A, a B and a C.
func NewQuery3[A, B, C any](w *World) *Query3[A, B, C] {
	q := &Query3[A, B, C]{w: w}
	q.Reset()
	return q
}

// Reset rewinds the cursor and picks up stores created since the last pass.
func (q *Query3[A, B, C]) Reset() {
	q.a = q.w.store(reflect.TypeFor[A](), false)
	q.b = q.w.store(reflect.TypeFor[B](), false)
	q.c = q.w.store(reflect.TypeFor[C](), false)
	q.reset(smallest(q.a, q.b, q.c))
	q.curA, q.curB, q.curC = nil, nil, nil
}

// Next advances to the next match.
func (q *Query3[A, B, C]) Next() bool {
	for {
		e, ok := q.advance()
		if !ok {
			return false
		}
		pa, ok := q.a.pos(e)
		if !ok {
			continue
		}
		pb, ok := q.b.pos(e)
		if !ok {
			continue
		}
		pc, ok := q.c.pos(e)
		if !ok {
			continue
		}
		q.cur = e
		q.curA = boxAt[A](q.a, pa)
		q.curB = boxAt[B](q.b, pb)
		q.curC = boxAt[C](q.c, pc)
		return true
	}
}

// Entity returns the current match.
func (q *Query3[A, B, C]) Entity() Entity { return q.cur }

// Get returns the current match's components.
func (q *Query3[A, B, C]) Get() (*A, *B, *C) { return q.curA, q.curB, q.curC }

// Count returns the number of matches and rewinds the cursor.
func (q *Query3[A, B, C]) Count() int {
	q.Reset()
	n := 0
	for q.Next() {
		n++
	}
	q.Reset()
	return n
}
