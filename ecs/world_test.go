package ecs_test

import (
	"errors"
	"testing"

	"github.com/plus3/smallworld/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignGetRoundTrip(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()

	ecs.Assign(w, e, Position{X: 3, Y: 4})
	ecs.Assign(w, e, Name{Value: "hero"})

	pos := ecs.Get[Position](w, e)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(4), pos.Y)

	name := ecs.Get[Name](w, e)
	assert.Equal(t, "hero", name.Value)
}

func TestAssignReplacesInPlace(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()

	ecs.Assign(w, e, Score(10))
	ecs.Assign(w, e, Score(99))

	assert.Equal(t, Score(99), *ecs.Get[Score](w, e))

	// Replacement does not duplicate the entity in views.
	assert.Len(t, ecs.View[Score](w), 1)
}

func TestAssignReturnsLiveReference(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()

	hp := ecs.Assign(w, e, Health{Current: 50, Max: 100})
	hp.Current = 75

	assert.Equal(t, 75, ecs.Get[Health](w, e).Current)
}

func TestHas(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()

	ecs.Assign(w, e, Position{})
	ecs.Assign(w, e, Velocity{})

	assert.True(t, ecs.Has[Position](w, e))
	assert.True(t, ecs.Has2[Position, Velocity](w, e))
	assert.False(t, ecs.Has3[Position, Velocity, Health](w, e))

	// A type never registered anywhere reports false, never an error.
	assert.False(t, ecs.Has[AI](w, e))
}

func TestUnassignIsIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()

	ecs.Assign(w, e, Position{X: 1})
	ecs.Unassign[Position](w, e)
	assert.False(t, ecs.Has[Position](w, e))
	assert.Empty(t, ecs.View[Position](w))

	// Second removal changes nothing observable.
	ecs.Unassign[Position](w, e)
	assert.False(t, ecs.Has[Position](w, e))
	assert.Empty(t, ecs.View[Position](w))

	// Removing a type never registered is also a no-op.
	ecs.Unassign[AI](w, e)
}

func TestSetActiveFiltersViews(t *testing.T) {
	w := ecs.NewWorld()
	e1 := w.NewEntity()
	e2 := w.NewEntity()
	ecs.Assign(w, e1, Position{})
	ecs.Assign(w, e2, Position{})

	assert.Len(t, ecs.View[Position](w), 2)

	w.SetActive(e2, false)
	assert.False(t, w.IsActive(e2))
	assert.ElementsMatch(t, []ecs.Entity{e1}, ecs.View[Position](w))

	// Inactive entities still exist and still match when asked for.
	assert.ElementsMatch(t, []ecs.Entity{e1, e2}, ecs.View[Position](w, true))

	w.SetActive(e2, true)
	assert.ElementsMatch(t, []ecs.Entity{e1, e2}, ecs.View[Position](w))
}

func TestNewInactiveEntity(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewInactiveEntity()
	ecs.Assign(w, e, Position{})

	assert.False(t, w.IsActive(e))
	assert.Empty(t, ecs.View[Position](w))
	assert.Len(t, ecs.View[Position](w, true), 1)
}

func TestCopyEntity(t *testing.T) {
	w := ecs.NewWorld()
	src := w.NewEntity()
	ecs.Assign(w, src, Position{X: 5, Y: 6})
	ecs.Assign(w, src, Health{Current: 10, Max: 10})

	dst := w.NewEntity()
	w.CopyEntity(dst, src)

	assert.Equal(t, Position{X: 5, Y: 6}, *ecs.Get[Position](w, dst))
	assert.Equal(t, 10, ecs.Get[Health](w, dst).Max)

	// Copies are values, not shared storage.
	ecs.Get[Position](w, dst).X = 50
	assert.Equal(t, float32(5), ecs.Get[Position](w, src).X)
}

func TestNewEntityFrom(t *testing.T) {
	w := ecs.NewWorld()
	src := w.NewEntity()
	ecs.Assign(w, src, Name{Value: "template"})
	ecs.Assign(w, src, Score(7))

	clone := w.NewEntityFrom(src)
	assert.NotEqual(t, src, clone)
	assert.Equal(t, "template", ecs.Get[Name](w, clone).Value)
	assert.Equal(t, Score(7), *ecs.Get[Score](w, clone))
	assert.True(t, w.IsActive(clone))

	// The clone shows up in the same views as the template.
	assert.ElementsMatch(t, []ecs.Entity{src, clone}, ecs.View2[Name, Score](w))
}

func TestDestroyEvictsEverything(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()
	keep := w.NewEntity()
	ecs.Assign(w, e, Position{X: 1})
	ecs.Assign(w, keep, Position{X: 2})

	w.DestroyEntity(e)

	assert.False(t, w.Alive(e))
	assert.False(t, ecs.Has[Position](w, e))
	assert.Equal(t, 1, w.EntityCount())
	assert.Equal(t, float32(2), ecs.Get[Position](w, keep).X)
}

func TestEntityCapacity(t *testing.T) {
	w := ecs.NewWorld()

	// Index 0 is reserved, so MaxEntities-1 creates succeed.
	for i := 0; i < ecs.MaxEntities-1; i++ {
		w.NewInactiveEntity()
	}
	before := w.EntityCount()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ecs.ErrCapacityExceeded))

		// Failed create leaves existing state unchanged.
		assert.Equal(t, before, w.EntityCount())
	}()
	w.NewInactiveEntity()
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	w := ecs.NewWorld()
	ecs.Register[Position](w)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ecs.ErrDuplicateRegistration))
	}()
	ecs.Register[Position](w)
}

func TestTypeIDForIsIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	id1 := ecs.TypeIDFor[Velocity](w)
	id2 := ecs.TypeIDFor[Velocity](w)
	assert.Equal(t, id1, id2)
}

func TestEachUnpacksComponents(t *testing.T) {
	w := ecs.NewWorld()
	for i := 0; i < 3; i++ {
		e := w.NewEntity()
		ecs.Assign2(w, e, Position{X: float32(i)}, Velocity{DX: 1})
	}

	n := 0
	ecs.Each2(w, func(e ecs.Entity, pos *Position, vel *Velocity) {
		pos.X += vel.DX
		n++
	})
	assert.Equal(t, 3, n)

	total := float32(0)
	ecs.Each(w, func(e ecs.Entity, pos *Position) {
		total += pos.X
	})
	assert.Equal(t, float32(0+1+2+3), total)
}

func TestViewOneAndGetOne(t *testing.T) {
	w := ecs.NewWorld()

	_, ok := ecs.ViewOne[Name](w)
	assert.False(t, ok)

	e := w.NewEntity()
	ecs.Assign(w, e, Name{Value: "solo"})

	got, ok := ecs.ViewOne[Name](w)
	require.True(t, ok)
	assert.Equal(t, e, got)
	assert.Equal(t, "solo", ecs.GetOne[Name](w).Value)
}
