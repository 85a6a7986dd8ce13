package tags

import "github.com/yohamta/donburi"

var (
	Pedestrian = donburi.NewTag().SetName("Pedestrian")
	Level      = donburi.NewTag().SetName("Level")
)
