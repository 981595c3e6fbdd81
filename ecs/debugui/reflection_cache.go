package debugui

import (
	"reflect"
	"sync"
)

// exportedField is one inspector-editable field of a component struct.
type exportedField struct {
	Name  string
	Index int
}

// fieldTable memoizes the exported fields of every struct type the inspector
// has rendered, so per-frame redraws do not re-walk reflect metadata. Safe
// for concurrent use even though worlds themselves are single-threaded; the
// table is shared process-wide.
type fieldTable struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]exportedField
}

func (ft *fieldTable) fields(t reflect.Type) []exportedField {
	ft.mu.RLock()
	cached, ok := ft.byType[t]
	ft.mu.RUnlock()
	if ok {
		return cached
	}

	ft.mu.Lock()
	defer ft.mu.Unlock()
	if cached, ok := ft.byType[t]; ok {
		return cached
	}

	var out []exportedField
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			out = append(out, exportedField{Name: f.Name, Index: i})
		}
	}
	ft.byType[t] = out
	return out
}

var componentFields = fieldTable{byType: make(map[reflect.Type][]exportedField)}
