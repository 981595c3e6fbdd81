package ecs

// Entity is an opaque identifier packing a slot index (low entityIndexBits
// bits) and a version (high bits). The version increments each time a slot
// index is recycled, so a held Entity whose slot has since been reused
// compares unequal to the slot's current occupant.
type Entity uint32

// NullEntity is the reserved "no entity" value. Slot index 0 never carries
// components and is never returned by NewEntity.
const NullEntity Entity = 0

func makeEntity(index, version uint32) Entity {
	return Entity(index&entityIndexMask | version<<entityIndexBits)
}

// Index returns the slot index part of the entity id.
func (e Entity) Index() uint32 {
	return uint32(e) & entityIndexMask
}

// Version returns the version part of the entity id.
func (e Entity) Version() uint32 {
	return uint32(e) >> entityIndexBits
}
