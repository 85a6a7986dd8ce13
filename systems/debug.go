package systems

import (
	"github.com/automoto/pedsync/debugview"
	"github.com/yohamta/donburi/ecs"
)

// Frame collects the debug state of every pedestrian.
func Frame(e *ecs.ECS) debugview.Frame {
	ok, simTime := FeedStatus(e)
	f := debugview.Frame{
		Tick:    GetRuntime(e).Tick,
		SimTime: simTime,
		FeedOK:  ok,
	}
	for _, ped := range Pedestrians(e) {
		f.Rows = append(f.Rows, debugview.Row{
			State: ped.Controller.Debug(),
			Anim:  ped.Params.String(),
		})
	}
	return f
}

// NewDebugSystem draws a frame every n ticks.
func NewDebugSystem(view *debugview.View, n uint64) func(*ecs.ECS) {
	if n == 0 {
		n = 1
	}
	return func(e *ecs.ECS) {
		if GetRuntime(e).Tick%n != 0 {
			return
		}
		view.Draw(Frame(e))
	}
}
