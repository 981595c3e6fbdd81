// Package ecs is a fixed-capacity entity-component-system store built around
// one idea: repeated identical queries should cost O(1) even though the
// underlying component assignment changes every cycle. Components live in
// dense per-type stores, each entity carries a bitmask of what it has, and
// view results are memoized per mask and kept consistent through deferred
// diffs instead of rescans.
//
// A World is single-threaded by design; nothing in it is safe for concurrent
// use.
package ecs

import "fmt"

// Active is an ordinary empty component used to mark an entity as active.
// Views filter on it by default; it has no special-cased logic anywhere
// else.
type Active struct{}

// World composes the type registry, entity table, per-type stores and the
// view cache behind the entity/component operations, and owns the system
// list and event bus.
type World struct {
	registry *typeRegistry
	table    *entityTable
	cache    *viewCache
	systems  []System
	events   eventBus

	activeID TypeID
}

// NewWorld creates an empty world. The Active component is registered first
// so its TypeID is stable across worlds.
func NewWorld() *World {
	w := &World{
		registry: newTypeRegistry(),
		table:    newEntityTable(),
		cache:    newViewCache(),
	}
	w.activeID = Register[Active](w)
	return w
}

// NewEntity creates a new active entity.
func (w *World) NewEntity() Entity {
	e := w.NewInactiveEntity()
	Assign(w, e, Active{})
	return e
}

// NewInactiveEntity creates a new entity without the Active component. It
// exists in the world and can have components assigned, but default views
// will not match it until SetActive.
func (w *World) NewInactiveEntity() Entity {
	e := w.table.create()
	// An empty-mask view (all entities, inactive included) must learn about
	// the newcomer too.
	w.cache.noteMaskGained(e, Mask{})
	return e
}

// NewEntityFrom creates a new active entity and copies every component from
// src onto it.
func (w *World) NewEntityFrom(src Entity) Entity {
	w.assertAlive(src)
	e := w.NewEntity()
	w.CopyEntity(e, src)
	return e
}

// CopyEntity copies every component src carries onto dst, creating or
// replacing as needed.
func (w *World) CopyEntity(dst, src Entity) {
	w.assertAlive(dst)
	w.assertAlive(src)
	srcMask := w.table.masks[src.Index()]
	for id, store := range w.registry.stores {
		if !srcMask.Test(TypeID(id)) {
			continue
		}
		store.copyValue(dst, src)
		w.table.setBit(dst, TypeID(id))
	}
	w.cache.noteMaskGained(dst, w.table.masks[dst.Index()])
}

// DestroyEntity destroys an entity: its mask is zeroed and every component
// value evicted immediately, but cached views only queue its removal and the
// entity's index is not reusable until Reconcile. Destroying an already
// destroyed or stale entity is a contract violation.
func (w *World) DestroyEntity(e Entity) {
	w.assertAlive(e)
	for _, store := range w.registry.stores {
		store.remove(e)
	}
	w.table.masks[e.Index()] = Mask{}
	entries := w.cache.noteDestroyed(e)
	w.table.destroy(e, entries)
}

// Reconcile drains the view-cache queues still referencing destroyed
// entities and returns their indices to the free list. It must run once per
// cycle, before any create that could reuse a just-freed index; Update calls
// it automatically.
func (w *World) Reconcile() {
	w.table.collect()
}

// Alive reports whether e names a current, live entity. NullEntity and
// stale ids (destroyed, or recycled under a newer version) are not alive.
func (w *World) Alive(e Entity) bool {
	return w.table.isAlive(e)
}

// SetActive adds or removes the Active component.
func (w *World) SetActive(e Entity, active bool) {
	if active {
		Assign(w, e, Active{})
	} else {
		Unassign[Active](w, e)
	}
}

// IsActive reports whether the entity carries the Active component.
func (w *World) IsActive(e Entity) bool {
	return Has[Active](w, e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return len(w.table.alive)
}

// Entities returns the live entities, inactive included. The returned slice
// is the world's own bookkeeping: a DestroyEntity reorders it, so take a
// copy before mutating the world while iterating (or use a view).
func (w *World) Entities() []Entity {
	return w.table.alive
}

// MaskOf returns the entity's current component mask.
func (w *World) MaskOf(e Entity) Mask {
	return w.table.masks[e.Index()]
}

// viewByMask resolves a view request, folding the Active bit into the mask
// unless inactive entities were asked for.
func (w *World) viewByMask(mask Mask, includeInactive bool) []Entity {
	if !includeInactive {
		mask.set(w.activeID)
	}
	return w.cache.view(mask, w.table.alive, &w.table.masks)
}

func (w *World) assertAlive(e Entity) {
	if checkEnabled && !w.table.isAlive(e) {
		panic(fmt.Errorf("%w: %#x", ErrInvalidEntity, uint32(e)))
	}
}

// Update runs every system's Update hook in order, then reconciles so freed
// entity indices become reusable next cycle. Call once per cycle.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.Reconcile()
}

// Draw runs every system's Draw hook in order.
func (w *World) Draw() {
	for _, s := range w.systems {
		s.Draw(w)
	}
}

// Unload unloads and removes every system and drops all event handlers.
func (w *World) Unload() {
	w.DestroySystems()
	w.ClearEventChannels()
}
