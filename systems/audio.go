package systems

import (
	"time"

	"github.com/automoto/pedsync/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateAudio advances the cue mixer by one tick of samples.
func UpdateAudio(e *ecs.ECS) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	cues := components.Audio.Get(entry).Cues
	if cues == nil {
		return
	}
	cues.Advance(time.Duration(GetRuntime(e).DT * float64(time.Second)))
}
