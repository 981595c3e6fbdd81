package ecs

import (
	"fmt"
	"math/bits"
)

// Mask records which component types an entity currently carries, one bit
// per registered TypeID. It is a fixed-width array so it is comparable and
// can key the view cache map.
//
// Do not persist a Mask: which bit represents a given component type depends
// on registration order.
type Mask [maskWords]uint64

func (m *Mask) set(id TypeID) {
	m[id/64] |= 1 << (id % 64)
}

func (m *Mask) clear(id TypeID) {
	m[id/64] &^= 1 << (id % 64)
}

// Test reports whether the bit for the given type id is set.
func (m Mask) Test(id TypeID) bool {
	return m[id/64]&(1<<(id%64)) != 0
}

// ContainsAll reports whether every bit set in sub is also set in m.
func (m Mask) ContainsAll(sub Mask) bool {
	for i := 0; i < maskWords; i++ {
		if m[i]&sub[i] != sub[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether no bits are set.
func (m Mask) IsZero() bool {
	for i := 0; i < maskWords; i++ {
		if m[i] != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	n := 0
	for i := 0; i < maskWords; i++ {
		n += bits.OnesCount64(m[i])
	}
	return n
}

func (m Mask) String() string {
	if maskWords == 1 {
		return fmt.Sprintf("%#016x", m[0])
	}
	s := ""
	for i := maskWords - 1; i >= 0; i-- {
		s += fmt.Sprintf("%016x", m[i])
	}
	return "0x" + s
}
