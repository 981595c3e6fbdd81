package ecs

import "reflect"

// MaxEventTypes is the maximum number of distinct event types that can be
// bound on one world.
const MaxEventTypes = 256

// eventBus routes typed events to bound handlers. Each event type gets a
// small integer channel id on first bind; Emit is allocation-free. The
// downcast back to func(E) bool is guarded by the registered id, never by
// runtime type inspection of the event value.
type eventBus struct {
	ids      map[reflect.Type]uint8
	handlers [MaxEventTypes][]any
	next     uint8
}

func (b *eventBus) channelID(t reflect.Type) uint8 {
	if b.ids == nil {
		b.ids = make(map[reflect.Type]uint8)
	}
	if id, ok := b.ids[t]; ok {
		return id
	}
	if int(b.next) >= MaxEventTypes {
		panic("ecs: too many event types")
	}
	id := b.next
	b.next++
	b.ids[t] = id
	return id
}

// Bind registers fn to receive events of type E, after any handlers bound
// earlier. A handler returning true marks the event handled and stops
// propagation to later handlers.
func Bind[E any](w *World, fn func(E) bool) {
	id := w.events.channelID(reflect.TypeFor[E]())
	w.events.handlers[id] = append(w.events.handlers[id], fn)
}

// Emit delivers an event to every handler bound for E, in bind order, until
// one returns true. Emitting an event type nothing is bound to is a no-op.
func Emit[E any](w *World, event E) {
	if w.events.ids == nil {
		return
	}
	id, ok := w.events.ids[reflect.TypeFor[E]()]
	if !ok {
		return
	}
	for _, h := range w.events.handlers[id] {
		if h.(func(E) bool)(event) {
			break
		}
	}
}

// ClearEventChannels drops every bound handler. Rarely needed: handlers go
// away with the world.
func (w *World) ClearEventChannels() {
	w.events = eventBus{}
}
