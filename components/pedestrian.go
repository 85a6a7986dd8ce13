package components

import (
	"github.com/automoto/pedsync/anim"
	"github.com/automoto/pedsync/controller"
	"github.com/automoto/pedsync/feed"
	"github.com/automoto/pedsync/world"
	"github.com/yohamta/donburi"
)

// PedestrianData binds one locally simulated pedestrian to its feed agent.
type PedestrianData struct {
	Agent      feed.AgentID
	Controller *controller.Controller
	Body       *world.Body
	Params     *anim.Params
	Spawn      int // index in spawn order, used for debug glyphs
}

var Pedestrian = donburi.NewComponentType[PedestrianData]()
