package ecs

import "errors"

// Contract violations are not recoverable runtime conditions: the world
// panics with one of these sentinels (wrapped with context) so corruption
// cannot propagate into the store or cache invariants. Capacity and
// duplicate-registration checks are always on since they guard fixed-size
// storage; invalid-entity and missing-component checks are only compiled in
// under the ecscheck build tag.
var (
	// ErrCapacityExceeded reports that the entity, component-type or store
	// slot limit was reached.
	ErrCapacityExceeded = errors.New("ecs: capacity exceeded")

	// ErrInvalidEntity reports an operation on NullEntity or on a stale
	// entity whose slot has been destroyed or recycled.
	ErrInvalidEntity = errors.New("ecs: invalid entity")

	// ErrMissingComponent reports a read of a component type that was never
	// assigned to the entity.
	ErrMissingComponent = errors.New("ecs: missing component")

	// ErrDuplicateRegistration reports an explicit Register of a component
	// type that is already known to the world.
	ErrDuplicateRegistration = errors.New("ecs: duplicate component registration")
)
