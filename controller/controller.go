// Package controller keeps a locally simulated pedestrian in step with its
// authoritative counterpart on the traffic feed.
//
// Each tick runs in a fixed order: ground probe, vertical motion,
// occupancy, feedback control, then displacement and animation. A
// Controller owns all of its state and is driven from a single goroutine.
package controller

import (
	"errors"
	"fmt"

	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/feed"
	"github.com/automoto/pedsync/pid"
	"github.com/automoto/pedsync/shared/gamemath"
	"github.com/automoto/pedsync/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrMissingDependency is returned by New when a required collaborator is
// nil.
var ErrMissingDependency = errors.New("controller: missing dependency")

// Deps are the collaborators of one controller. Animation, Audio and Logf
// are optional.
type Deps struct {
	ID        feed.AgentID
	Feed      Feed
	Space     SpatialQuery
	Body      MovementExecutor
	Animation AnimationSink
	Audio     AudioTrigger
	Logf      Logf
}

// DebugState is a read-only view of the controller for visualization.
type DebugState struct {
	ID               feed.AgentID
	Mode             netconfig.Mode
	LookAhead        mgl64.Vec2
	LastKnown        mgl64.Vec2
	Dwell            float64
	Grounded         bool
	FreeFalling      bool
	Speed            float64
	AnimationBlend   float64
	VerticalVelocity float64
	Yaw              float64
	Error            float64
	FeedDown         bool
	Distance         pid.Diagnostics
	SpeedLoop        pid.Diagnostics
}

// Controller synchronizes one pedestrian body with the feed.
type Controller struct {
	cfg   cfg.ControllerConfig
	phys  VerticalParams
	id    feed.AgentID
	feed  Feed
	body  MovementExecutor
	anim  AnimationSink
	audio AudioTrigger
	probe GroundProbe
	logf  Logf

	loops     feed.Loops
	occupancy *Occupancy
	vertical  *Vertical

	lookAhead mgl64.Vec2
	lastKnown mgl64.Vec2
	errorDist float64

	speed            float64
	blend            float64
	measuredSpeed    float64
	rotationVelocity float64

	grounded    bool
	freeFalling bool
	stride      float64

	feedDown      bool
	manualWarned  bool
	correctionLog bool
	running       bool
}

// New creates a controller. Call Init before the first Tick.
func New(c cfg.ControllerConfig, p cfg.PhysicsConfig, d Deps) (*Controller, error) {
	switch {
	case d.ID == "":
		return nil, fmt.Errorf("agent id: %w", ErrMissingDependency)
	case d.Feed == nil:
		return nil, fmt.Errorf("feed: %w", ErrMissingDependency)
	case d.Space == nil:
		return nil, fmt.Errorf("spatial query: %w", ErrMissingDependency)
	case d.Body == nil:
		return nil, fmt.Errorf("movement executor: %w", ErrMissingDependency)
	}

	ctl := &Controller{
		cfg:   c,
		phys:  VerticalParamsFrom(p),
		id:    d.ID,
		feed:  d.Feed,
		body:  d.Body,
		anim:  d.Animation,
		audio: d.Audio,
		probe: NewGroundProbe(d.Space, p.GroundedOffset, p.GroundedRadius, p.GroundLayers),
		logf:  d.Logf,
		loops: feed.Loops{
			Distance: pid.NewWithGains(c.DistanceGains),
			Speed:    pid.NewWithGains(c.SpeedGains),
		},
	}
	if ctl.anim == nil {
		ctl.anim = nopAnimation{}
	}
	if ctl.audio == nil {
		ctl.audio = nopAudio{}
	}
	if ctl.logf == nil {
		ctl.logf = defaultLogf
	}
	return ctl, nil
}

// Init resets all owned state and anchors the look-ahead marker on the
// current body position.
func (c *Controller) Init() {
	c.occupancy = NewOccupancy(c.cfg.CorrectionDelay, c.cfg.CorrectionPolicy)
	c.vertical = NewVertical(c.phys)
	c.loops.Distance.Reset()
	c.loops.Speed.Reset()

	c.lastKnown = gamemath.Planar(c.body.Position())
	c.lookAhead = c.lastKnown
	c.errorDist = 0
	c.speed, c.blend, c.measuredSpeed, c.rotationVelocity = 0, 0, 0, 0
	c.grounded = true
	c.freeFalling = false
	c.stride = 0
	c.feedDown = false
	c.manualWarned = false
	c.correctionLog = false
	c.running = true

	c.logf("[controller] %s: init (backend %s, correction policy %s)", c.id, c.cfg.Backend, c.cfg.CorrectionPolicy)
}

// Shutdown stops the controller. Further ticks are ignored until Init.
func (c *Controller) Shutdown() {
	if !c.running {
		return
	}
	c.running = false
	c.loops.Distance.Reset()
	c.loops.Speed.Reset()
	c.speed, c.blend, c.measuredSpeed, c.rotationVelocity = 0, 0, 0, 0
	c.anim.SetFloat(ParamSpeed, 0)
	c.logf("[controller] %s: shutdown", c.id)
}

// Tick advances the controller by dt seconds.
func (c *Controller) Tick(dt float64) {
	if !c.running || dt <= 0 {
		return
	}
	c.noteFeed(c.step(dt))
}

func (c *Controller) step(dt float64) error {
	vout := c.tickVertical(dt)

	if c.cfg.Backend == cfg.BackendManual {
		if !c.manualWarned {
			c.logf("[controller] %s: manual locomotion is not implemented, holding still", c.id)
			c.manualWarned = true
		}
		return nil
	}

	c.lastKnown = gamemath.Planar(c.body.Position())

	var feedErr error
	occupied, err := c.feed.Occupied(c.id)
	if err != nil {
		feedErr = err
		occupied = false
	}

	if c.occupancy.Tick(occupied, dt) == netconfig.ModeCorrecting {
		if err := c.correct(); err != nil {
			// No authoritative position to snap to: fall back to tracking.
			c.occupancy.Reset()
			c.correctionLog = false
			return err
		}
		return feedErr
	}
	c.correctionLog = false

	out := feed.ControlOutput{LookAhead: c.lookAhead}
	if feedErr == nil {
		out, err = c.feed.ComputeControl(feed.ControlRequest{
			ID:        c.id,
			Current:   c.lastKnown,
			LookAhead: c.lookAhead,
			DT:        dt,
			Loops:     c.loops,
		})
		if err != nil {
			feedErr = err
			out = feed.ControlOutput{LookAhead: c.lookAhead}
		}
	}
	c.lookAhead = out.LookAhead
	c.errorDist = out.Error

	moving := out.Movement != (mgl64.Vec2{})
	target := c.targetSpeed(out, moving)
	c.blendSpeed(target, dt)

	yaw := gamemath.SmoothDampAngle(c.body.Yaw(), out.Direction, &c.rotationVelocity, c.cfg.RotationSmoothTime, dt)
	if moving {
		c.body.SetYaw(yaw)
	}

	dir := gamemath.Normalize3(mgl64.Vec3{out.Movement.X(), 0, out.Movement.Y()})
	displacement := dir.Mul(c.speed * dt).Add(mgl64.Vec3{0, vout.Velocity * dt, 0})

	before := c.body.Position()
	c.body.Move(displacement)
	moved := gamemath.HorizontalSpeed(c.body.Position().Sub(before))
	c.measuredSpeed = moved / dt
	c.footsteps(moved)

	c.anim.SetFloat(ParamSpeed, c.blend)
	c.anim.SetFloat(ParamMotionSpeed, c.cfg.MotionSpeed)
	return feedErr
}

// tickVertical probes the ground, integrates vertical motion and publishes
// the grounded state.
func (c *Controller) tickVertical(dt float64) VerticalOutput {
	c.grounded = c.probe.Check(c.body.Position())
	out := c.vertical.Tick(c.grounded, dt, c.phys)

	if out.Landed && c.freeFalling {
		c.audio.Land(c.cfg.FootstepVolume)
	}
	c.freeFalling = out.FreeFalling

	c.anim.SetBool(ParamGrounded, c.grounded)
	c.anim.SetBool(ParamJump, false)
	c.anim.SetBool(ParamFreeFall, out.FreeFalling)
	return out
}

// correct snaps the body onto the authoritative position and re-anchors
// the look-ahead marker there.
func (c *Controller) correct() error {
	pos, err := c.feed.AuthoritativePosition(c.id)
	if err != nil {
		return err
	}
	if !c.correctionLog {
		c.logf("[controller] %s: inside vehicle for %.1fs, correcting to (%.2f, %.2f)",
			c.id, c.occupancy.Dwell(), pos.X(), pos.Y())
		c.correctionLog = true
	}

	c.body.Teleport(gamemath.Lift(pos, 0))
	c.lastKnown = pos
	c.lookAhead = pos
	c.measuredSpeed = 0
	c.stride = 0
	return nil
}

func (c *Controller) targetSpeed(out feed.ControlOutput, moving bool) float64 {
	target := out.Speed
	if out.Error > c.cfg.CatchUpError {
		target = c.cfg.SprintSpeed
	}
	if !moving {
		target = 0
	}
	return target
}

// blendSpeed relaxes speed and the animation blend toward target.
func (c *Controller) blendSpeed(target, dt float64) {
	current := c.measuredSpeed
	if current < target-c.cfg.SpeedOffset || current > target+c.cfg.SpeedOffset {
		c.speed = gamemath.Lerp(current, target, dt*c.cfg.SpeedChangeRate)
		c.speed = gamemath.RoundTo(c.speed, c.cfg.SpeedPrecision)
	} else {
		c.speed = target
	}

	c.blend = gamemath.Lerp(c.blend, target, dt*c.cfg.SpeedChangeRate)
	c.blend = gamemath.SnapToZero(c.blend, c.cfg.BlendEpsilon)
}

func (c *Controller) footsteps(moved float64) {
	if !c.grounded || c.blend <= 0.5 || c.cfg.StrideLength <= 0 {
		return
	}
	c.stride += moved
	for c.stride >= c.cfg.StrideLength {
		c.stride -= c.cfg.StrideLength
		c.audio.Footstep(c.cfg.FootstepVolume)
	}
}

// noteFeed logs feed outages once per transition.
func (c *Controller) noteFeed(err error) {
	switch {
	case err != nil && !c.feedDown:
		c.feedDown = true
		c.logf("[controller] %s: feed error, holding still: %v", c.id, err)
	case err == nil && c.feedDown:
		c.feedDown = false
		c.logf("[controller] %s: feed recovered", c.id)
	}
}

// ID returns the feed identity of the controlled agent.
func (c *Controller) ID() feed.AgentID { return c.id }

// Mode returns the occupancy mode of the last tick.
func (c *Controller) Mode() netconfig.Mode {
	if c.occupancy == nil {
		return netconfig.ModeTracking
	}
	return c.occupancy.Mode()
}

// Debug returns a snapshot of the controller state.
func (c *Controller) Debug() DebugState {
	st := DebugState{
		ID:             c.id,
		Mode:           c.Mode(),
		LookAhead:      c.lookAhead,
		LastKnown:      c.lastKnown,
		Grounded:       c.grounded,
		FreeFalling:    c.freeFalling,
		Speed:          c.speed,
		AnimationBlend: c.blend,
		Yaw:            c.body.Yaw(),
		Error:          c.errorDist,
		FeedDown:       c.feedDown,
		Distance:       c.loops.Distance.Diagnostics(),
		SpeedLoop:      c.loops.Speed.Diagnostics(),
	}
	if c.occupancy != nil {
		st.Dwell = c.occupancy.Dwell()
	}
	if c.vertical != nil {
		st.VerticalVelocity = c.vertical.Velocity()
	}
	return st
}
