package factory

import (
	"github.com/automoto/pedsync/archetypes"
	"github.com/automoto/pedsync/audio"
	"github.com/automoto/pedsync/components"
	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/feed"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateFeed stores the feed singleton. link may be nil.
func CreateFeed(ecs *ecs.ECS, link components.Link, src feed.Source) *donburi.Entry {
	entry := archetypes.Feed.Spawn(ecs)
	components.Feed.SetValue(entry, components.FeedData{
		Link:    link,
		Source:  src,
		Pursuit: feed.NewPursuit(src, cfg.Pursuit),
	})
	return entry
}

func CreateAudio(ecs *ecs.ECS, cues *audio.Cues) *donburi.Entry {
	entry := archetypes.Audio.Spawn(ecs)
	components.Audio.SetValue(entry, components.AudioData{Cues: cues})
	return entry
}

func CreateRuntime(ecs *ecs.ECS, dt float64) *donburi.Entry {
	entry := archetypes.Runtime.Spawn(ecs)
	components.Runtime.SetValue(entry, components.RuntimeData{DT: dt})
	return entry
}
