package ecs

// System is a behavior object managed by a World. Hooks run in the order
// systems were added: Load once when added, Update every cycle, Draw when
// the host loop draws, Unload when the system (or the world) is torn down.
//
// Embed BaseSystem to implement only the hooks you need.
type System interface {
	Load(w *World)
	Update(w *World, dt float64)
	Draw(w *World)
	Unload(w *World)
}

// BaseSystem provides no-op implementations of every System hook.
type BaseSystem struct{}

func (BaseSystem) Load(*World)            {}
func (BaseSystem) Update(*World, float64) {}
func (BaseSystem) Draw(*World)            {}
func (BaseSystem) Unload(*World)          {}

// AddSystem appends a system to the world and calls its Load hook. Systems
// are not unique: different instances of the same type may coexist.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	s.Load(w)
}

// AddSystemBefore inserts a system before the first registered system of
// type Before, or appends if none exists. Load is called either way.
func AddSystemBefore[Before System](w *World, s System) {
	for i, existing := range w.systems {
		if _, ok := existing.(Before); ok {
			w.systems = append(w.systems, nil)
			copy(w.systems[i+1:], w.systems[i:])
			w.systems[i] = s
			s.Load(w)
			return
		}
	}
	w.AddSystem(s)
}

// GetSystem returns the first system of type T.
func GetSystem[T System](w *World) (T, bool) {
	for _, s := range w.systems {
		if t, ok := s.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// GetSystems returns every system of type T, in registration order.
func GetSystems[T System](w *World) []T {
	var out []T
	for _, s := range w.systems {
		if t, ok := s.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// DestroySystem unloads and removes a system. Removing a system that is not
// in the world is a no-op. Do not call while Update or Draw is iterating
// the system list.
func (w *World) DestroySystem(s System) {
	for i, existing := range w.systems {
		if existing == s {
			s.Unload(w)
			w.systems = append(w.systems[:i], w.systems[i+1:]...)
			return
		}
	}
}

// DestroySystems unloads and removes every system.
func (w *World) DestroySystems() {
	for _, s := range w.systems {
		s.Unload(w)
	}
	w.systems = nil
}

// Systems returns the world's systems in execution order.
func (w *World) Systems() []System {
	return w.systems
}
