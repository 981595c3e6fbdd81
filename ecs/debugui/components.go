package debugui

import (
	"github.com/plus3/smallworld/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

type ViewDebuggerComponent struct {
	selectedComponentTypes map[string]bool
	cache                  *ViewDebuggerCache
}

type StatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
