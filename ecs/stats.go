package ecs

// WorldStats is a point-in-time snapshot of the world's bookkeeping, for
// debug overlays and soak tooling.
type WorldStats struct {
	Entities        int
	FreeIndices     int
	PendingDestroys int
	ComponentTypes  int
	Components      []ComponentStats
	Views           []ViewStats
}

// ComponentStats reports how many live values one component type has.
type ComponentStats struct {
	Name  string
	Count int
}

// ViewStats reports the size and queued-diff depth of one cached view.
type ViewStats struct {
	Mask         string
	Entities     int
	PendingDiffs int
}

// CollectStats gathers a WorldStats snapshot. View order is unspecified.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		Entities:        len(w.table.alive),
		FreeIndices:     len(w.table.free),
		PendingDestroys: len(w.table.pending),
		ComponentTypes:  len(w.registry.stores),
	}
	for id, store := range w.registry.stores {
		stats.Components = append(stats.Components, ComponentStats{
			Name:  w.registry.types[id].String(),
			Count: store.count(),
		})
	}
	for mask, entry := range w.cache.entries {
		stats.Views = append(stats.Views, ViewStats{
			Mask:         mask.String(),
			Entities:     len(entry.entities),
			PendingDiffs: len(entry.diffs),
		})
	}
	return stats
}

// ComponentNames returns the type names of the components e carries, in
// TypeID order.
func (w *World) ComponentNames(e Entity) []string {
	mask := w.table.masks[e.Index()]
	var names []string
	for id, t := range w.registry.types {
		if mask.Test(TypeID(id)) {
			names = append(names, t.String())
		}
	}
	return names
}

// ComponentValue pairs a component type name with a pointer to the live
// value, for reflection-based inspectors.
type ComponentValue struct {
	Name  string
	Value any
}

// Inspect returns name/value pairs for every component e carries. The
// values are pointers into the stores and follow the read lifetime rule.
func (w *World) Inspect(e Entity) []ComponentValue {
	mask := w.table.masks[e.Index()]
	var out []ComponentValue
	for id, store := range w.registry.stores {
		if !mask.Test(TypeID(id)) {
			continue
		}
		out = append(out, ComponentValue{
			Name:  w.registry.types[id].String(),
			Value: store.value(e),
		})
	}
	return out
}
