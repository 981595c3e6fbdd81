package ecs

import (
	"fmt"
	"reflect"
)

// TypeID is the stable small integer identifier assigned to a component type
// on first use. It indexes the per-type bit in a Mask.
type TypeID uint8

// componentStore is the type-erased view of a Store[T]. The world walks
// every registered store through this interface when it does not know the
// concrete component types (destroy, copy-entity, introspection).
type componentStore interface {
	remove(e Entity) bool
	copyValue(dst, src Entity)
	contains(e Entity) bool
	count() int
	value(e Entity) any
}

// typeRegistry assigns TypeIDs and owns the lazily-created store for each
// registered component type.
type typeRegistry struct {
	ids    map[reflect.Type]TypeID
	types  []reflect.Type
	stores []componentStore
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{
		ids: make(map[reflect.Type]TypeID, MaxComponentTypes),
	}
}

func (r *typeRegistry) add(t reflect.Type, store componentStore) TypeID {
	if len(r.stores) >= MaxComponentTypes {
		panic(fmt.Errorf("%w: more than %d component types", ErrCapacityExceeded, MaxComponentTypes))
	}
	id := TypeID(len(r.stores))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.stores = append(r.stores, store)
	return id
}

// Register explicitly registers T with the world and returns its TypeID.
// Registering a type twice through this entry point panics with
// ErrDuplicateRegistration; use TypeIDFor when idempotence is wanted.
// Components register themselves on first Assign, so calling this is only
// needed to pin TypeID assignment order.
func Register[T any](w *World) TypeID {
	t := reflect.TypeFor[T]()
	if _, ok := w.registry.ids[t]; ok {
		panic(fmt.Errorf("%w: %s", ErrDuplicateRegistration, t))
	}
	return w.registry.add(t, newStore[T]())
}

// TypeIDFor returns the TypeID for T, registering it on first use.
func TypeIDFor[T any](w *World) TypeID {
	id, _ := storeFor[T](w)
	return id
}

// storeFor resolves (and lazily registers) the concrete store for T.
func storeFor[T any](w *World) (TypeID, *Store[T]) {
	t := reflect.TypeFor[T]()
	if id, ok := w.registry.ids[t]; ok {
		return id, w.registry.stores[id].(*Store[T])
	}
	s := newStore[T]()
	id := w.registry.add(t, s)
	return id, s
}

// lookupStore resolves the store for T without registering it. The last
// result is false if T was never registered.
func lookupStore[T any](w *World) (TypeID, *Store[T], bool) {
	id, ok := w.registry.ids[reflect.TypeFor[T]()]
	if !ok {
		return 0, nil, false
	}
	return id, w.registry.stores[id].(*Store[T]), true
}
