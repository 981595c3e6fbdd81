package debugui

import "github.com/plus3/smallworld/ecs"

// SpawnDebugUI creates one entity per debug window, each carrying its state
// component and an ImguiItem that renders it. The component inspector follows
// the entity browser's selection.
func SpawnDebugUI(w *ecs.World) {
	browser := w.NewEntity()
	ecs.Assign(w, browser, NewEntityBrowserComponent(100))
	ecs.Assign(w, browser, ImguiItem{Render: func() {
		ecs.Get[EntityBrowserComponent](w, browser).Render(w)
	}})

	inspector := w.NewEntity()
	ecs.Assign(w, inspector, NewComponentInspectorComponent())
	ecs.Assign(w, inspector, ImguiItem{Render: func() {
		selected := ecs.Get[EntityBrowserComponent](w, browser).GetSelectedEntity()
		ecs.Get[ComponentInspectorComponent](w, inspector).Render(w, selected)
	}})

	viewDebugger := w.NewEntity()
	ecs.Assign(w, viewDebugger, NewViewDebuggerComponent())
	ecs.Assign(w, viewDebugger, ImguiItem{Render: func() {
		ecs.Get[ViewDebuggerComponent](w, viewDebugger).Render(w)
	}})

	timer := NewFrameTimer()
	statsWindow := w.NewEntity()
	ecs.Assign(w, statsWindow, NewStatsComponent(120))
	ecs.Assign(w, statsWindow, ImguiItem{Render: func() {
		ecs.Get[StatsComponent](w, statsWindow).Render(w, timer.GetDeltaTime())
	}})
}
