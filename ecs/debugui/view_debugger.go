package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/smallworld/ecs"
)

type ViewDebuggerCache struct {
	componentTypes []string
	lastTypeCount  int
}

func NewViewDebuggerComponent() ViewDebuggerComponent {
	return ViewDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &ViewDebuggerCache{
			lastTypeCount: -1,
		},
	}
}

func (vd *ViewDebuggerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("View Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.CollectStats()
	vd.rebuildCacheIfNeeded(stats)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		vd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range vd.cache.componentTypes {
		selected := vd.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			if selected {
				vd.selectedComponentTypes[compType] = true
			} else {
				delete(vd.selectedComponentTypes, compType)
			}
		}
	}

	imgui.Separator()

	if len(vd.selectedComponentTypes) > 0 {
		matching := vd.countMatchingEntities(w)
		imgui.Text(fmt.Sprintf("Matching Entities: %d", matching))
		imgui.Separator()
	}

	if imgui.TreeNodeStr("Cached Views") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ViewTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Mask")
			imgui.TableSetupColumn("Entities")
			imgui.TableSetupColumn("Pending Diffs")
			imgui.TableHeadersRow()

			for _, view := range stats.Views {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(view.Mask)

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%d", view.Entities))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", view.PendingDiffs))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (vd *ViewDebuggerComponent) rebuildCacheIfNeeded(stats ecs.WorldStats) {
	if vd.cache.lastTypeCount != stats.ComponentTypes {
		vd.cache.componentTypes = nil
		vd.cache.lastTypeCount = stats.ComponentTypes
	}

	if vd.cache.componentTypes == nil {
		for _, cs := range stats.Components {
			vd.cache.componentTypes = append(vd.cache.componentTypes, cs.Name)
		}
		sort.Strings(vd.cache.componentTypes)
	}
}

func (vd *ViewDebuggerComponent) countMatchingEntities(w *ecs.World) int {
	matching := 0
	for _, e := range w.Entities() {
		names := w.ComponentNames(e)
		has := make(map[string]bool, len(names))
		for _, n := range names {
			has[n] = true
		}
		ok := true
		for typeName := range vd.selectedComponentTypes {
			if !has[typeName] {
				ok = false
				break
			}
		}
		if ok {
			matching++
		}
	}
	return matching
}
