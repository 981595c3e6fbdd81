package ecs_test

import (
	"math/rand"
	"testing"

	"github.com/plus3/smallworld/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario from the view cache's contract: exact-mask matching with supersets.
func TestViewMatchesSupersets(t *testing.T) {
	w := ecs.NewWorld()

	e0 := w.NewEntity()
	e1 := w.NewEntity()
	e2 := w.NewEntity()

	ecs.Assign2(w, e0, Position{}, Velocity{})
	ecs.Assign(w, e1, Position{})
	ecs.Assign3(w, e2, Position{}, Velocity{}, Health{})

	assert.ElementsMatch(t, []ecs.Entity{e2}, ecs.View3[Position, Velocity, Health](w))
	assert.Len(t, ecs.View[Position](w), 3)

	ecs.Unassign[Position](w, e0)
	assert.Len(t, ecs.View[Position](w), 2)
}

func TestDestroyExcludedBeforeReconcile(t *testing.T) {
	w := ecs.NewWorld()

	e0 := w.NewEntity()
	e1 := w.NewEntity()
	ecs.Assign(w, e0, Position{})
	ecs.Assign(w, e1, Position{})

	// Prime the cache, then destroy without reconciling.
	assert.Len(t, ecs.View[Position](w), 2)
	w.DestroyEntity(e1)

	assert.ElementsMatch(t, []ecs.Entity{e0}, ecs.View[Position](w))
}

func TestViewIsMemoized(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()
	ecs.Assign(w, e, Position{})

	v1 := ecs.View[Position](w)
	v2 := ecs.View[Position](w)

	// Same backing entry; no rebuild between identical requests.
	require.Len(t, v1, 1)
	assert.Same(t, &v1[0], &v2[0])
}

func TestViewLazyDiffApplication(t *testing.T) {
	w := ecs.NewWorld()

	e0 := w.NewEntity()
	ecs.Assign(w, e0, Position{})
	assert.Len(t, ecs.View[Position](w), 1)

	// Mutations queue diffs but do not touch the visible list...
	e1 := w.NewEntity()
	ecs.Assign(w, e1, Position{})
	stats := w.CollectStats()
	pending := 0
	for _, vs := range stats.Views {
		pending += vs.PendingDiffs
	}
	assert.Greater(t, pending, 0)

	// ...until the next read applies them.
	assert.Len(t, ecs.View[Position](w), 2)
	stats = w.CollectStats()
	for _, vs := range stats.Views {
		assert.Zero(t, vs.PendingDiffs)
	}
}

// Removing a component and assigning it back between reads must leave the
// entity in the view: the two pending operations cancel.
func TestRemoveThenReassignBetweenReads(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()
	ecs.Assign(w, e, Position{X: 1})

	assert.Len(t, ecs.View[Position](w), 1)

	ecs.Unassign[Position](w, e)
	ecs.Assign(w, e, Position{X: 2})

	got := ecs.View[Position](w)
	require.Len(t, got, 1)
	assert.Equal(t, e, got[0])
	assert.Equal(t, float32(2), ecs.Get[Position](w, e).X)
}

// The mirror case: assign then unassign between reads nets out to absent.
func TestAssignThenRemoveBetweenReads(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()

	assert.Empty(t, ecs.View[Position](w))

	ecs.Assign(w, e, Position{})
	ecs.Unassign[Position](w, e)

	assert.Empty(t, ecs.View[Position](w))
}

func TestFirstInsertedKeepsPosition(t *testing.T) {
	w := ecs.NewWorld()

	var es []ecs.Entity
	for i := 0; i < 5; i++ {
		e := w.NewEntity()
		ecs.Assign(w, e, Score(i))
		es = append(es, e)
	}

	v := ecs.View[Score](w)
	require.Equal(t, es, append([]ecs.Entity(nil), v...))

	// Removing the middle entity swap-pops: the last one takes its slot,
	// everything before it keeps position.
	ecs.Unassign[Score](w, es[2])
	v = ecs.View[Score](w)
	require.Len(t, v, 4)
	assert.Equal(t, es[0], v[0])
	assert.Equal(t, es[1], v[1])
	assert.Equal(t, es[4], v[2])
	assert.Equal(t, es[3], v[3])
}

func TestIndexReuseDoesNotAliasCaches(t *testing.T) {
	w := ecs.NewWorld()

	e := w.NewEntity()
	ecs.Assign(w, e, Position{})
	assert.Len(t, ecs.View[Position](w), 1)

	// Destroy and reconcile WITHOUT reading the view in between: the
	// reconcile itself must drain the queue before the index is reused.
	w.DestroyEntity(e)
	w.Reconcile()

	reused := w.NewEntity()
	assert.Equal(t, e.Index(), reused.Index())

	// The recycled slot's new occupant has no Position; the cache must not
	// have confused it with the old one.
	assert.Empty(t, ecs.View[Position](w))

	ecs.Assign(w, reused, Velocity{})
	assert.ElementsMatch(t, []ecs.Entity{reused}, ecs.View[Velocity](w))
	assert.Empty(t, ecs.View[Position](w))
}

// rescan computes what a full linear scan would return for the given
// component set, used as the oracle for cache convergence.
func rescanPosVel(w *ecs.World, wantVel bool) map[ecs.Entity]bool {
	out := make(map[ecs.Entity]bool)
	for _, e := range w.Entities() {
		if !w.IsActive(e) {
			continue
		}
		if !ecs.Has[Position](w, e) {
			continue
		}
		if wantVel && !ecs.Has[Velocity](w, e) {
			continue
		}
		out[e] = true
	}
	return out
}

func toSet(es []ecs.Entity) map[ecs.Entity]bool {
	out := make(map[ecs.Entity]bool, len(es))
	for _, e := range es {
		out[e] = true
	}
	return out
}

// For any interleaving of mutations and reads, a view must equal what a
// full rescan would produce at the same point, whether or not Reconcile has
// run.
func TestViewConvergesUnderRandomChurn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := ecs.NewWorld()

	var live []ecs.Entity
	spawn := func() {
		e := w.NewEntity()
		live = append(live, e)
		if rng.Intn(2) == 0 {
			ecs.Assign(w, e, Position{X: float32(rng.Intn(100))})
		}
		if rng.Intn(2) == 0 {
			ecs.Assign(w, e, Velocity{DX: 1})
		}
	}
	for i := 0; i < 64; i++ {
		spawn()
	}

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 2:
			spawn()
		case op < 4 && len(live) > 0:
			i := rng.Intn(len(live))
			ecs.Assign(w, live[i], Position{X: float32(step)})
		case op < 5 && len(live) > 0:
			i := rng.Intn(len(live))
			ecs.Assign(w, live[i], Velocity{DY: float32(step)})
		case op < 6 && len(live) > 0:
			i := rng.Intn(len(live))
			ecs.Unassign[Position](w, live[i])
		case op < 7 && len(live) > 0:
			i := rng.Intn(len(live))
			ecs.Unassign[Velocity](w, live[i])
		case op < 8 && len(live) > 0:
			i := rng.Intn(len(live))
			w.SetActive(live[i], rng.Intn(2) == 0)
		case op < 9 && len(live) > 0:
			i := rng.Intn(len(live))
			w.DestroyEntity(live[i])
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
		default:
			w.Reconcile()
		}

		// Reads at random points, including points where no reconcile has
		// happened since the last destroy.
		if step%7 == 0 {
			got := toSet(ecs.View[Position](w))
			want := rescanPosVel(w, false)
			require.Equal(t, want, got, "step %d: View[Position] diverged", step)
		}
		if step%11 == 0 {
			got := toSet(ecs.View2[Position, Velocity](w))
			want := rescanPosVel(w, true)
			require.Equal(t, want, got, "step %d: View2 diverged", step)
		}
	}
}

func TestViewNoDuplicatesAfterChurn(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity()

	for i := 0; i < 10; i++ {
		ecs.Assign(w, e, Position{})
		ecs.Unassign[Position](w, e)
		ecs.Assign(w, e, Position{})
	}

	v := ecs.View[Position](w)
	require.Len(t, v, 1)
	assert.Equal(t, e, v[0])
}
