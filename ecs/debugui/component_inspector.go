package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/smallworld/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(w *ecs.World, selected ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntity = selected

	if ci.selectedEntity == ecs.NullEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !w.Alive(ci.selectedEntity) {
		imgui.Text(fmt.Sprintf("Entity %d.%d no longer exists", ci.selectedEntity.Index(), ci.selectedEntity.Version()))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d.%d", ci.selectedEntity.Index(), ci.selectedEntity.Version()))
	imgui.Text(fmt.Sprintf("Mask: %s", w.MaskOf(ci.selectedEntity).String()))
	imgui.Separator()

	for _, cv := range w.Inspect(ci.selectedEntity) {
		if imgui.TreeNodeStr(cv.Name) {
			ci.renderComponent(cv.Value)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderComponent edits a component through the live pointer Inspect handed
// out. The pointer is only held within this frame.
func (ci *ComponentInspectorComponent) renderComponent(component any) {
	val := reflect.ValueOf(component)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return
	}
	val = val.Elem()

	if val.Kind() != reflect.Struct {
		ci.renderField("Value", val)
		return
	}

	for _, field := range componentFields.fields(val.Type()) {
		ci.renderField(field.Name, val.Field(field.Index))
	}
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range componentFields.fields(val.Type()) {
				ci.renderField(nf.Name, val.Field(nf.Index))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
