package components

import (
	"github.com/automoto/pedsync/audio"
	"github.com/yohamta/donburi"
)

// AudioData stores the cue mixer (singleton component)
type AudioData struct {
	Cues *audio.Cues
}

var Audio = donburi.NewComponentType[AudioData]()
