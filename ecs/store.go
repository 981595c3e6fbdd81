package ecs

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// storeInitialCap is the initial capacity of a store's lookup maps.
const storeInitialCap = 256

// Store holds every live instance of one component type in a dense,
// gap-free slice, with bidirectional entity<->slot lookups. Removal keeps
// the slice dense by moving the last element into the hole, so slot order
// is not stable across removals.
type Store[T any] struct {
	dense []T

	// entityToSlot and slotToEntity are mutual inverses over [0, n).
	entityToSlot *intmap.Map[Entity, uint32]
	slotToEntity *intmap.Map[uint32, Entity]

	// n is the number of valid slots; dense may retain extra capacity
	// beyond it from earlier removals.
	n int
}

func newStore[T any]() *Store[T] {
	return &Store[T]{
		entityToSlot: intmap.New[Entity, uint32](storeInitialCap),
		slotToEntity: intmap.New[uint32, Entity](storeInitialCap),
	}
}

// write sets the component value for an entity. If the entity already has a
// value it is replaced in its existing slot and added is false; otherwise a
// new slot is appended and added is true. The returned pointer follows the
// same lifetime rule as read.
func (s *Store[T]) write(e Entity, v T) (ptr *T, added bool) {
	if slot, ok := s.entityToSlot.Get(e); ok {
		s.dense[slot] = v
		return &s.dense[slot], false
	}
	if s.n >= MaxEntities {
		panic(fmt.Errorf("%w: store full (%d slots)", ErrCapacityExceeded, MaxEntities))
	}
	slot := uint32(s.n)
	s.n++
	s.entityToSlot.Put(e, slot)
	s.slotToEntity.Put(slot, e)

	// Slots beyond n may survive a previous remove; reuse them before
	// growing the slice.
	if int(slot) < len(s.dense) {
		s.dense[slot] = v
	} else {
		s.dense = append(s.dense, v)
	}
	return &s.dense[slot], true
}

// read returns a pointer to the entity's component value. The pointer is
// valid only until the next structural mutation of this store (a remove, or
// a write that appends); callers must re-fetch rather than hold it across
// mutating calls or frame boundaries.
func (s *Store[T]) read(e Entity) *T {
	slot, ok := s.entityToSlot.Get(e)
	if checkEnabled && !ok {
		panic(fmt.Errorf("%w: entity %#x", ErrMissingComponent, uint32(e)))
	}
	return &s.dense[slot]
}

// remove evicts the entity's component value, moving the last slot into the
// hole to keep the slice dense. Removing an entity that has no value of this
// type is a no-op; the report is whether a value was actually removed.
func (s *Store[T]) remove(e Entity) bool {
	slot, ok := s.entityToSlot.Get(e)
	if !ok {
		return false
	}
	last := uint32(s.n - 1)
	moved, _ := s.slotToEntity.Get(last)
	s.dense[slot] = s.dense[last]

	// When slot == last the Put/Del pairs below deliberately collapse to
	// plain deletes.
	s.slotToEntity.Put(slot, moved)
	s.entityToSlot.Put(moved, slot)
	s.entityToSlot.Del(e)
	s.slotToEntity.Del(last)
	s.n--
	return true
}

// copyValue writes a copy of src's value into dst, creating or replacing as
// per write. No-op if src has no value of this type.
func (s *Store[T]) copyValue(dst, src Entity) {
	slot, ok := s.entityToSlot.Get(src)
	if !ok {
		return
	}
	v := s.dense[slot]
	s.write(dst, v)
}

// contains reports whether the entity has a value of this type.
func (s *Store[T]) contains(e Entity) bool {
	_, ok := s.entityToSlot.Get(e)
	return ok
}

// count returns the number of live values in the store.
func (s *Store[T]) count() int {
	return s.n
}

// value returns the entity's component as an untyped pointer for
// introspection, or nil if absent.
func (s *Store[T]) value(e Entity) any {
	slot, ok := s.entityToSlot.Get(e)
	if !ok {
		return nil
	}
	return &s.dense[slot]
}
