package ecs

import "github.com/kamstrup/intmap"

// viewDiffOp is a pending membership change queued against a view entry.
type viewDiffOp uint8

const (
	viewAdd viewDiffOp = iota
	viewRemove
)

type viewDiff struct {
	entity Entity
	op     viewDiffOp
}

// viewEntry memoizes the result of one exact mask request. The entities
// slice is the visible result; diffs accumulate between reads and are only
// applied by the next view call or by Reconcile, so mutations never touch
// the slice a caller may still be iterating.
type viewEntry struct {
	mask     Mask
	entities []Entity
	lookup   *intmap.Map[Entity, bool]
	diffs    []viewDiff
}

// listed reports the entry's membership verdict for an entity with pending
// diffs taken into account. The applied lookup set alone would be stale
// between flushes.
func (v *viewEntry) listed(e Entity) bool {
	for i := len(v.diffs) - 1; i >= 0; i-- {
		if v.diffs[i].entity == e {
			return v.diffs[i].op == viewAdd
		}
	}
	_, ok := v.lookup.Get(e)
	return ok
}

// queue records a membership change. A duplicate of an already-pending diff
// is a no-op and an opposite pending diff cancels out, so at most one
// operation per entity is ever pending between flushes.
func (v *viewEntry) queue(e Entity, op viewDiffOp) {
	for i, d := range v.diffs {
		if d.entity != e {
			continue
		}
		if d.op == op {
			return
		}
		v.diffs = append(v.diffs[:i], v.diffs[i+1:]...)
		return
	}
	v.diffs = append(v.diffs, viewDiff{entity: e, op: op})
}

func (v *viewEntry) hasDiffFor(e Entity) bool {
	for _, d := range v.diffs {
		if d.entity == e {
			return true
		}
	}
	return false
}

// apply flushes the pending diff queue into the visible result. Removal
// swap-pops: the last listed entity moves into the removed entity's
// position, so insertion order is only preserved for entities that were
// never displaced by a later removal.
func (v *viewEntry) apply() {
	for _, d := range v.diffs {
		switch d.op {
		case viewAdd:
			v.entities = append(v.entities, d.entity)
			v.lookup.Put(d.entity, true)
		case viewRemove:
			for i, e := range v.entities {
				if e == d.entity {
					last := len(v.entities) - 1
					v.entities[i] = v.entities[last]
					v.entities = v.entities[:last]
					break
				}
			}
			v.lookup.Del(d.entity)
		}
	}
	v.diffs = v.diffs[:0]
}

// viewCache memoizes, per exact request mask, the entities whose mask is a
// superset. Distinct masks are cached independently; there is no
// subset/superset sharing and no eviction, so a process issuing unboundedly
// many distinct masks grows this map unboundedly.
type viewCache struct {
	entries map[Mask]*viewEntry
}

func newViewCache() *viewCache {
	return &viewCache{entries: make(map[Mask]*viewEntry)}
}

// view returns the current result for a mask, applying any queued diffs
// first. A never-seen mask costs one full scan of the alive list; after that
// a read is O(pending diffs).
func (c *viewCache) view(mask Mask, alive []Entity, masks *[MaxEntities]Mask) []Entity {
	if entry, ok := c.entries[mask]; ok {
		if len(entry.diffs) > 0 {
			entry.apply()
		}
		return entry.entities
	}

	entry := &viewEntry{
		mask:   mask,
		lookup: intmap.New[Entity, bool](storeInitialCap),
	}
	for _, e := range alive {
		if masks[e.Index()].ContainsAll(mask) {
			entry.entities = append(entry.entities, e)
			entry.lookup.Put(e, true)
		}
	}
	c.entries[mask] = entry
	return entry.entities
}

// noteMaskGained queues Add diffs after an entity's mask gained bits. m is
// the entity's new mask; every entry whose request mask is now a subset and
// which does not already list the entity gets one diff.
func (c *viewCache) noteMaskGained(e Entity, m Mask) {
	for _, entry := range c.entries {
		if !m.ContainsAll(entry.mask) {
			continue
		}
		if entry.listed(e) {
			continue
		}
		entry.queue(e, viewAdd)
	}
}

// noteBitCleared queues Remove diffs after an entity lost the component with
// the given type id. Only entries that require the bit and currently list
// the entity are affected.
func (c *viewCache) noteBitCleared(e Entity, id TypeID) {
	for _, entry := range c.entries {
		if !entry.mask.Test(id) {
			continue
		}
		if !entry.listed(e) {
			continue
		}
		entry.queue(e, viewRemove)
	}
}

// noteDestroyed queues Remove diffs for a destroyed entity and returns the
// entries that still reference it, i.e. those whose queues must drain before
// the entity's index may be reissued.
func (c *viewCache) noteDestroyed(e Entity) []*viewEntry {
	var referenced []*viewEntry
	for _, entry := range c.entries {
		if !entry.listed(e) {
			continue
		}
		entry.queue(e, viewRemove)
		// A pending Add that just cancelled out leaves no trace of the
		// entity, so that entry does not gate index reuse.
		if entry.hasDiffFor(e) {
			referenced = append(referenced, entry)
		}
	}
	return referenced
}
