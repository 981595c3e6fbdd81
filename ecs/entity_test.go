package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/smallworld/ecs"
	"github.com/stretchr/testify/assert"
)

func TestEntityPacking(t *testing.T) {
	w := ecs.NewWorld()

	e := w.NewEntity()
	assert.Equal(t, uint32(1), e.Index())
	assert.Equal(t, uint32(0), e.Version())

	// Recycling the index three times leaves the index intact and the
	// version at 3.
	for i := 1; i <= 3; i++ {
		w.DestroyEntity(e)
		w.Reconcile()
		e = w.NewEntity()
		assert.Equal(t, uint32(1), e.Index(), fmt.Sprintf("recycle %d", i))
		assert.Equal(t, uint32(i), e.Version(), fmt.Sprintf("recycle %d", i))
	}
}

func TestNullEntityIsNotAlive(t *testing.T) {
	w := ecs.NewWorld()
	assert.False(t, w.Alive(ecs.NullEntity))
}

func TestSequentialIndices(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.NewEntity()
	e2 := w.NewEntity()
	e3 := w.NewEntity()

	assert.Equal(t, uint32(1), e1.Index())
	assert.Equal(t, uint32(2), e2.Index())
	assert.Equal(t, uint32(3), e3.Index())
	assert.NotEqual(t, e1, e2)
	assert.NotEqual(t, e2, e3)
}

func TestRecycledIndexBumpsVersion(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.NewEntity()
	w.DestroyEntity(e1)
	w.Reconcile()

	e2 := w.NewEntity()
	assert.Equal(t, e1.Index(), e2.Index())
	assert.NotEqual(t, e1.Version(), e2.Version())
	assert.NotEqual(t, e1, e2)

	// The old id is stale and must behave as nonexistent.
	assert.False(t, w.Alive(e1))
	assert.True(t, w.Alive(e2))
}

func TestRecycleIsLIFO(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.NewEntity()
	e2 := w.NewEntity()
	w.DestroyEntity(e1)
	w.DestroyEntity(e2)
	w.Reconcile()

	// The most recently freed index comes back first.
	r1 := w.NewEntity()
	r2 := w.NewEntity()
	assert.Equal(t, e2.Index(), r1.Index())
	assert.Equal(t, e1.Index(), r2.Index())
}

func TestNoReuseBeforeReconcile(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.NewEntity()
	w.DestroyEntity(e1)

	// Without a reconcile the index stays parked; a fresh index is used.
	e2 := w.NewEntity()
	assert.NotEqual(t, e1.Index(), e2.Index())
}
