package ecs

import "fmt"

// Assign adds or replaces the component value of type T on an entity and
// returns a pointer to the stored value. Replacing an existing value is an
// in-place write with no view-cache work; first assignment of a type flips
// the entity's mask bit and queues Add diffs on the views it now matches.
//
// The returned pointer follows the read lifetime rule: it is invalidated by
// the next structural mutation of T's store.
func Assign[T any](w *World, e Entity, v T) *T {
	w.assertAlive(e)
	id, store := storeFor[T](w)
	ptr, added := store.write(e, v)
	if added {
		m := w.table.setBit(e, id)
		w.cache.noteMaskGained(e, m)
	}
	return ptr
}

// Assign2 assigns two components in one call.
func Assign2[A, B any](w *World, e Entity, a A, b B) {
	Assign(w, e, a)
	Assign(w, e, b)
}

// Assign3 assigns three components in one call.
func Assign3[A, B, C any](w *World, e Entity, a A, b B, c C) {
	Assign(w, e, a)
	Assign(w, e, b)
	Assign(w, e, c)
}

// Get returns a pointer to the entity's component of type T. The entity is
// contractually required to carry the component (check with Has first);
// without the ecscheck build tag the existence check is compiled out and a
// violation is undefined behavior.
//
// Do not hold the pointer across a structural mutation of T's store or
// across cycles; store the entity and Get again instead.
func Get[T any](w *World, e Entity) *T {
	w.assertAlive(e)
	_, store, ok := lookupStore[T](w)
	if checkEnabled && !ok {
		panic(fmt.Errorf("%w: type never registered", ErrMissingComponent))
	}
	return store.read(e)
}

// Has reports whether the entity carries a component of type T. Querying a
// type that was never registered reports false, never an error.
func Has[T any](w *World, e Entity) bool {
	_, store, ok := lookupStore[T](w)
	return ok && store.contains(e)
}

// Has2 reports whether the entity carries both component types.
func Has2[A, B any](w *World, e Entity) bool {
	return Has[A](w, e) && Has[B](w, e)
}

// Has3 reports whether the entity carries all three component types.
func Has3[A, B, C any](w *World, e Entity) bool {
	return Has[A](w, e) && Has[B](w, e) && Has[C](w, e)
}

// Unassign removes the component of type T from an entity. Removing a
// component the entity does not carry (or a type never registered) is a
// no-op.
func Unassign[T any](w *World, e Entity) {
	w.assertAlive(e)
	id, store, ok := lookupStore[T](w)
	if !ok {
		return
	}
	if store.remove(e) {
		w.cache.noteBitCleared(e, id)
		w.table.clearBit(e, id)
	}
}

// View returns the entities carrying T, filtered to active entities unless
// includeInactive is given as true. Results are memoized per requested
// component set: the first call for a new set scans the world once, later
// calls just apply whatever diffs queued up since. The returned slice is
// the cache's backing storage — treat it as read-only and invalidated by
// the next view call after a mutation. Entity order is insertion order
// except where a removal has swapped a later entity into the hole.
func View[A any](w *World, includeInactive ...bool) []Entity {
	var m Mask
	m.set(TypeIDFor[A](w))
	return w.viewByMask(m, optInactive(includeInactive))
}

// View2 returns the entities carrying both A and B. See View.
func View2[A, B any](w *World, includeInactive ...bool) []Entity {
	var m Mask
	m.set(TypeIDFor[A](w))
	m.set(TypeIDFor[B](w))
	return w.viewByMask(m, optInactive(includeInactive))
}

// View3 returns the entities carrying A, B and C. See View.
func View3[A, B, C any](w *World, includeInactive ...bool) []Entity {
	var m Mask
	m.set(TypeIDFor[A](w))
	m.set(TypeIDFor[B](w))
	m.set(TypeIDFor[C](w))
	return w.viewByMask(m, optInactive(includeInactive))
}

// View4 returns the entities carrying A, B, C and D. See View.
func View4[A, B, C, D any](w *World, includeInactive ...bool) []Entity {
	var m Mask
	m.set(TypeIDFor[A](w))
	m.set(TypeIDFor[B](w))
	m.set(TypeIDFor[C](w))
	m.set(TypeIDFor[D](w))
	return w.viewByMask(m, optInactive(includeInactive))
}

// ViewOne returns the first entity carrying A. Views keep first-inserted
// entities in place until a removal displaces them, so this reliably
// returns the same entity while it still matches.
func ViewOne[A any](w *World, includeInactive ...bool) (Entity, bool) {
	v := View[A](w, includeInactive...)
	if len(v) == 0 {
		return NullEntity, false
	}
	return v[0], true
}

// GetOne returns the component of the first entity carrying A, and panics
// if no entity matches. Use ViewOne when an empty match is not an error.
func GetOne[A any](w *World, includeInactive ...bool) *A {
	e, ok := ViewOne[A](w, includeInactive...)
	if !ok {
		panic(fmt.Errorf("%w: no entity matched", ErrMissingComponent))
	}
	return Get[A](w, e)
}

// Each calls fn once per entity carrying A.
func Each[A any](w *World, fn func(Entity, *A), includeInactive ...bool) {
	for _, e := range View[A](w, includeInactive...) {
		fn(e, Get[A](w, e))
	}
}

// Each2 calls fn once per entity carrying both A and B.
func Each2[A, B any](w *World, fn func(Entity, *A, *B), includeInactive ...bool) {
	for _, e := range View2[A, B](w, includeInactive...) {
		fn(e, Get[A](w, e), Get[B](w, e))
	}
}

// Each3 calls fn once per entity carrying A, B and C.
func Each3[A, B, C any](w *World, fn func(Entity, *A, *B, *C), includeInactive ...bool) {
	for _, e := range View3[A, B, C](w, includeInactive...) {
		fn(e, Get[A](w, e), Get[B](w, e), Get[C](w, e))
	}
}

func optInactive(opts []bool) bool {
	return len(opts) > 0 && opts[0]
}
