package systems

import (
	"sort"

	"github.com/automoto/pedsync/components"
	"github.com/automoto/pedsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePedestrians ticks every controller by the fixed step.
func UpdatePedestrians(e *ecs.ECS) {
	dt := GetRuntime(e).DT
	tags.Pedestrian.Each(e.World, func(entry *donburi.Entry) {
		components.Pedestrian.Get(entry).Controller.Tick(dt)
	})
}

// ShutdownPedestrians stops every controller and takes its body out of the
// collision space.
func ShutdownPedestrians(e *ecs.ECS) {
	tags.Pedestrian.Each(e.World, func(entry *donburi.Entry) {
		ped := components.Pedestrian.Get(entry)
		ped.Controller.Shutdown()
		ped.Body.Remove()
	})
}

// Pedestrians returns the pedestrians in spawn order.
func Pedestrians(e *ecs.ECS) []*components.PedestrianData {
	var out []*components.PedestrianData
	tags.Pedestrian.Each(e.World, func(entry *donburi.Entry) {
		out = append(out, components.Pedestrian.Get(entry))
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Spawn < out[j].Spawn })
	return out
}
