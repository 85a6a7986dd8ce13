package archetypes

import (
	"github.com/automoto/pedsync/components"
	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Pedestrian = newArchetype(
		tags.Pedestrian,
		components.Pedestrian,
	)
	Level = newArchetype(
		tags.Level,
		components.Level,
	)
	Feed = newArchetype(
		components.Feed,
	)
	Audio = newArchetype(
		components.Audio,
	)
	Runtime = newArchetype(
		components.Runtime,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
