package ecs

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// pendingDestroy is a destroyed entity whose index cannot be reissued yet:
// one or more view entries still hold a queued diff referencing it.
type pendingDestroy struct {
	entity  Entity
	entries []*viewEntry
}

// entityTable allocates and recycles entity identifiers and owns every
// entity's component mask. Index reuse is deferred until collect has drained
// the view entries that still reference a destroyed entity; otherwise a
// recycled index could alias its previous occupant in a cache.
type entityTable struct {
	masks [MaxEntities]Mask

	// alive is the dense list of live entities, in creation order until
	// disturbed by a destroy (swap-remove). alivePos maps each live entity
	// to its position in it.
	alive    []Entity
	alivePos *intmap.Map[Entity, int32]

	// free holds recycled entity ids; create pops the most recently freed
	// one and bumps its version. nextIndex is the monotonic counter for
	// fresh indices, starting past the reserved NullEntity slot.
	free      []Entity
	nextIndex uint32

	pending []pendingDestroy
}

func newEntityTable() *entityTable {
	return &entityTable{
		alivePos:  intmap.New[Entity, int32](storeInitialCap),
		nextIndex: 1,
	}
}

// create returns a new entity with an empty mask, recycling the most
// recently freed index (with its version incremented) when one is available.
func (t *entityTable) create() Entity {
	var e Entity
	if n := len(t.free); n > 0 {
		e = t.free[n-1]
		t.free = t.free[:n-1]
		e = makeEntity(e.Index(), e.Version()+1)
	} else {
		if t.nextIndex >= MaxEntities {
			panic(fmt.Errorf("%w: %d entities", ErrCapacityExceeded, MaxEntities))
		}
		e = makeEntity(t.nextIndex, 0)
		t.nextIndex++
	}
	t.masks[e.Index()] = Mask{}
	t.alivePos.Put(e, int32(len(t.alive)))
	t.alive = append(t.alive, e)
	return e
}

// destroy unlists a live entity and parks it as pending until collect runs.
// The caller has already zeroed the mask, evicted component values and
// queued the cache removals in entries.
func (t *entityTable) destroy(e Entity, entries []*viewEntry) {
	pos, ok := t.alivePos.Get(e)
	if checkEnabled && !ok {
		panic(fmt.Errorf("%w: destroy of %#x", ErrInvalidEntity, uint32(e)))
	}
	last := len(t.alive) - 1
	moved := t.alive[last]
	t.alive[pos] = moved
	t.alivePos.Put(moved, pos)
	t.alive = t.alive[:last]
	t.alivePos.Del(e)
	t.pending = append(t.pending, pendingDestroy{entity: e, entries: entries})
}

// collect flushes the view entries referenced by each pending destruction,
// then returns the indices to the free list. Must run before any create
// that could reuse a just-freed index.
func (t *entityTable) collect() {
	if len(t.pending) == 0 {
		return
	}
	for _, p := range t.pending {
		// Usually a no-op: an entry read since the destroy has already
		// drained its queue.
		for _, entry := range p.entries {
			entry.apply()
		}
		t.free = append(t.free, p.entity)
	}
	t.pending = t.pending[:0]
}

// isAlive reports whether e names a current, live entity. A stale id (the
// slot was destroyed or recycled) is not alive.
func (t *entityTable) isAlive(e Entity) bool {
	if e == NullEntity {
		return false
	}
	_, ok := t.alivePos.Get(e)
	return ok
}

func (t *entityTable) setBit(e Entity, id TypeID) Mask {
	m := &t.masks[e.Index()]
	m.set(id)
	return *m
}

func (t *entityTable) clearBit(e Entity, id TypeID) {
	t.masks[e.Index()].clear(id)
}
