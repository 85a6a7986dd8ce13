package components

import (
	"github.com/automoto/pedsync/world"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Name  string
	Level *world.Level
}

var Level = donburi.NewComponentType[LevelData]()
