package factory

import (
	"github.com/automoto/pedsync/archetypes"
	"github.com/automoto/pedsync/components"
	"github.com/automoto/pedsync/world"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateLevel(ecs *ecs.ECS, name string, level *world.Level) *donburi.Entry {
	entry := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(entry, components.LevelData{
		Name:  name,
		Level: level,
	})
	return entry
}
