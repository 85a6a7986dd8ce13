package netcomponents

import "github.com/yohamta/donburi"

type AgentKind uint8

const (
	AgentPedestrian AgentKind = iota
	AgentVehicle
)

// NetAgentData identifies a traffic agent and its occupancy.
type NetAgentData struct {
	ID        string
	Kind      AgentKind
	Occupied  bool   // pedestrian is riding inside VehicleID
	VehicleID string // empty unless Occupied
}

var NetAgent = donburi.NewComponentType[NetAgentData]()
