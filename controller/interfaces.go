package controller

import (
	"log"

	"github.com/automoto/pedsync/feed"
	"github.com/go-gl/mathgl/mgl64"
)

// Feed is the authoritative position source for one or more agents.
type Feed interface {
	Occupied(id feed.AgentID) (bool, error)
	AuthoritativePosition(id feed.AgentID) (mgl64.Vec2, error)
	ComputeControl(req feed.ControlRequest) (feed.ControlOutput, error)
}

// SpatialQuery answers overlap tests against the local collision world.
// Trigger volumes are never reported.
type SpatialQuery interface {
	CheckGroundOverlap(center mgl64.Vec3, radius float64, mask ...string) bool
}

// AnimationSink receives animation parameters. Fire and forget.
type AnimationSink interface {
	SetFloat(name string, v float64)
	SetBool(name string, v bool)
}

// AudioTrigger plays locomotion cues. Clip choice belongs to the
// implementation.
type AudioTrigger interface {
	Footstep(volume float64)
	Land(volume float64)
}

// MovementExecutor is the collision-resolved body of a pedestrian. World Y
// is up; yaw is in degrees around Y.
type MovementExecutor interface {
	Position() mgl64.Vec3
	Yaw() float64
	SetYaw(deg float64)
	Move(displacement mgl64.Vec3)
	Teleport(p mgl64.Vec3)
}

// Logf is the logging hook. Tests swap it for a silent or recording one.
type Logf func(format string, args ...any)

var defaultLogf Logf = log.Printf

// Animation parameter names published every tick.
const (
	ParamSpeed       = "Speed"
	ParamMotionSpeed = "MotionSpeed"
	ParamGrounded    = "Grounded"
	ParamJump        = "Jump"
	ParamFreeFall    = "FreeFall"
)

type nopAnimation struct{}

func (nopAnimation) SetFloat(string, float64) {}
func (nopAnimation) SetBool(string, bool)     {}

type nopAudio struct{}

func (nopAudio) Footstep(float64) {}
func (nopAudio) Land(float64)     {}
