package core

import (
	"fmt"
	"log"

	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/automoto/pedsync/shared/netcomponents"
	"github.com/automoto/pedsync/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// simAgent is one traffic agent driven by the simulator.
type simAgent struct {
	def    leveldata.AgentDef
	mover  *RouteMover
	entity donburi.Entity

	riding bool
	rode   bool
}

func (a *simAgent) boards() bool {
	return a.def.BoardVehicle != "" && a.def.BoardAt > 0
}

// Sim moves every agent of a level along its route and plays the boarding
// schedules. Agent state lives in netcomponents on donburi entities so the
// server can sync them as they are.
type Sim struct {
	world donburi.World

	agents   []*simAgent
	byID     map[string]*simAgent
	info     donburi.Entity
	simTime  float64
	tickRate int
}

// NewSim creates one entity per agent plus the feed info entity.
func NewSim(world donburi.World, name, level string, data *leveldata.CollisionData, tickRate int) (*Sim, error) {
	if err := ValidateLevel(data); err != nil {
		return nil, err
	}

	s := &Sim{
		world:    world,
		byID:     make(map[string]*simAgent, len(data.Agents)),
		tickRate: tickRate,
	}

	// Vehicles first so riders read this tick's vehicle position
	ordered := make([]leveldata.AgentDef, 0, len(data.Agents))
	for _, def := range data.Agents {
		if def.Kind == leveldata.KindVehicle {
			ordered = append(ordered, def)
		}
	}
	for _, def := range data.Agents {
		if def.Kind != leveldata.KindVehicle {
			ordered = append(ordered, def)
		}
	}

	for _, def := range ordered {
		a := &simAgent{
			def:   def,
			mover: NewRouteMover(routePoints(data.Routes[def.Route]), def.Speed),
		}
		a.entity = world.Create(netcomponents.NetAgent, netcomponents.NetPosition, netcomponents.NetVelocity)
		s.agents = append(s.agents, a)
		s.byID[def.ID] = a
		s.write(a, a.mover.Position(), mgl64.Vec2{})
	}

	s.info = world.Create(netcomponents.NetFeedInfo)
	netcomponents.NetFeedInfo.SetValue(world.Entry(s.info), netcomponents.NetFeedInfoData{
		Name:     name,
		Level:    level,
		Version:  netconfig.ProtocolVersion,
		TickRate: tickRate,
	})

	log.Printf("[feed] simulating %d agents on %s", len(s.agents), level)
	return s, nil
}

// Step advances the simulation by dt seconds.
func (s *Sim) Step(dt float64) {
	s.simTime += dt

	for _, a := range s.agents {
		if a.boards() {
			s.schedule(a)
		}

		if a.riding {
			v := s.byID[a.def.BoardVehicle]
			s.write(a, v.mover.Position(), v.mover.Velocity())
			continue
		}
		pos, vel := a.mover.Update(dt)
		s.write(a, pos, vel)
	}

	info := netcomponents.NetFeedInfo.Get(s.world.Entry(s.info))
	info.SimTime = s.simTime
}

// schedule boards and alights a pedestrian by the clock. After the ride the
// pedestrian walks back to its route from where the vehicle left it.
func (s *Sim) schedule(a *simAgent) {
	switch {
	case !a.riding && !a.rode && s.simTime >= a.def.BoardAt:
		a.riding = true
		log.Printf("[feed] %s boarded %s at t=%.1fs", a.def.ID, a.def.BoardVehicle, s.simTime)
	case a.riding && s.simTime >= a.def.BoardAt+a.def.RideFor:
		a.riding = false
		a.rode = true
		a.mover.Rejoin(s.byID[a.def.BoardVehicle].mover.Position())
		log.Printf("[feed] %s left %s at t=%.1fs", a.def.ID, a.def.BoardVehicle, s.simTime)
	}
}

func (s *Sim) write(a *simAgent, pos, vel mgl64.Vec2) {
	entry := s.world.Entry(a.entity)

	kind := netcomponents.AgentPedestrian
	if a.def.Kind == leveldata.KindVehicle {
		kind = netcomponents.AgentVehicle
	}
	agent := netcomponents.NetAgentData{ID: a.def.ID, Kind: kind, Occupied: a.riding}
	if a.riding {
		agent.VehicleID = a.def.BoardVehicle
	}

	netcomponents.NetAgent.SetValue(entry, agent)
	netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{X: pos.X(), Y: pos.Y()})
	netcomponents.NetVelocity.SetValue(entry, netcomponents.NetVelocityData{SpeedX: vel.X(), SpeedY: vel.Y()})
}

// Entities returns the agent entities in simulation order.
func (s *Sim) Entities() []donburi.Entity {
	out := make([]donburi.Entity, len(s.agents))
	for i, a := range s.agents {
		out[i] = a.entity
	}
	return out
}

// InfoEntity is the entity carrying NetFeedInfo.
func (s *Sim) InfoEntity() donburi.Entity { return s.info }

// Has reports whether id is simulated.
func (s *Sim) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// State returns the current synced state of an agent.
func (s *Sim) State(id string) (netcomponents.NetAgentData, netcomponents.NetPositionData, netcomponents.NetVelocityData, error) {
	a, ok := s.byID[id]
	if !ok {
		return netcomponents.NetAgentData{}, netcomponents.NetPositionData{}, netcomponents.NetVelocityData{}, fmt.Errorf("agent %q is not simulated", id)
	}
	entry := s.world.Entry(a.entity)
	return *netcomponents.NetAgent.Get(entry), *netcomponents.NetPosition.Get(entry), *netcomponents.NetVelocity.Get(entry), nil
}

// Time is the simulation clock in seconds.
func (s *Sim) Time() float64 { return s.simTime }
