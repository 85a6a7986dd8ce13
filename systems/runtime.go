package systems

import (
	"github.com/automoto/pedsync/components"
	"github.com/yohamta/donburi/ecs"
)

var zeroRuntime components.RuntimeData

// GetRuntime returns the runtime singleton, or a zero value when the world
// has none.
func GetRuntime(e *ecs.ECS) *components.RuntimeData {
	entry, ok := components.Runtime.First(e.World)
	if !ok {
		zeroRuntime = components.RuntimeData{}
		return &zeroRuntime
	}
	return components.Runtime.Get(entry)
}

// UpdateRuntime advances the local clock. It runs last in a tick.
func UpdateRuntime(e *ecs.ECS) {
	entry, ok := components.Runtime.First(e.World)
	if !ok {
		return
	}
	rt := components.Runtime.Get(entry)
	rt.Tick++
	rt.Time += rt.DT
}
