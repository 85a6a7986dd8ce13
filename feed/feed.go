// Package feed connects pedestrians to the authoritative traffic-agent feed.
//
// A Source answers raw agent state (position, velocity, occupancy). Pursuit
// layers the control law on top of a Source and is what the controller
// consumes.
package feed

import (
	"errors"

	"github.com/automoto/pedsync/pid"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrAgentUnknown means the feed has no record for the identity.
	ErrAgentUnknown = errors.New("feed: agent unknown")
	// ErrFeedUnavailable means the feed could not answer: disconnected,
	// not yet synced, or stale.
	ErrFeedUnavailable = errors.New("feed: unavailable")
)

// AgentID keys an agent in the feed. It never changes for a spawned
// pedestrian.
type AgentID string

// AgentState is one authoritative sample for an agent. Positions are planar
// feed coordinates (X east, Y north).
type AgentState struct {
	ID        AgentID
	Position  mgl64.Vec2
	Velocity  mgl64.Vec2
	Occupied  bool
	VehicleID AgentID
	Seq       uint32
}

// Source answers raw agent state.
type Source interface {
	Agent(id AgentID) (AgentState, error)
}

// Loops are the two feedback loops owned by a controlled pedestrian.
type Loops struct {
	Distance *pid.Controller
	Speed    *pid.Controller
}

// ControlRequest asks for the movement intent of one agent for one tick.
type ControlRequest struct {
	ID        AgentID
	Current   mgl64.Vec2
	LookAhead mgl64.Vec2
	DT        float64
	Loops     Loops
}

// ControlOutput is the movement intent computed for one tick.
type ControlOutput struct {
	Movement  mgl64.Vec2 // unit direction, or zero when stationary
	Speed     float64
	Direction float64 // yaw in degrees
	Error     float64 // distance to the authoritative position
	LookAhead mgl64.Vec2
}
