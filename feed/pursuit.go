package feed

import (
	"fmt"
	"math"

	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Pursuit turns raw authoritative samples into per-tick movement intent.
// It holds no per-agent state: the feedback loops travel with each request
// and belong to the pedestrian that sent it.
type Pursuit struct {
	src Source
	cfg cfg.PursuitConfig
}

// NewPursuit creates a control law over src.
func NewPursuit(src Source, c cfg.PursuitConfig) *Pursuit {
	return &Pursuit{src: src, cfg: c}
}

// Occupied reports whether the agent is riding inside a vehicle.
func (p *Pursuit) Occupied(id AgentID) (bool, error) {
	st, err := p.src.Agent(id)
	if err != nil {
		return false, fmt.Errorf("occupancy: %w", err)
	}
	return st.Occupied, nil
}

// AuthoritativePosition returns the agent position the feed holds.
func (p *Pursuit) AuthoritativePosition(id AgentID) (mgl64.Vec2, error) {
	st, err := p.src.Agent(id)
	if err != nil {
		return mgl64.Vec2{}, fmt.Errorf("position: %w", err)
	}
	return st.Position, nil
}

// ComputeControl leads the authoritative position by LookAheadTime, relaxes
// the look-ahead marker toward that point and steers the pedestrian at it.
// The distance loop regulates how far the pedestrian lags behind its
// nominal lead; the speed loop regulates the resulting speed against the
// feed speed.
func (p *Pursuit) ComputeControl(req ControlRequest) (ControlOutput, error) {
	st, err := p.src.Agent(req.ID)
	if err != nil {
		return ControlOutput{LookAhead: req.LookAhead}, fmt.Errorf("compute control: %w", err)
	}

	predicted := st.Position.Add(st.Velocity.Mul(p.cfg.LookAheadTime))
	marker := predicted
	if req.LookAhead.Sub(predicted).Len() < p.cfg.MarkerSnapDistance {
		step := gamemath.Clamp01(p.cfg.MarkerRate * req.DT)
		marker = req.LookAhead.Add(predicted.Sub(req.LookAhead).Mul(step))
	}

	out := ControlOutput{
		Error:     st.Position.Sub(req.Current).Len(),
		LookAhead: marker,
	}

	feedSpeed := st.Velocity.Len()
	if feedSpeed < p.cfg.StopSpeed && out.Error < p.cfg.ArrivalRadius {
		return out, nil
	}

	toMarker := marker.Sub(req.Current)
	dir := gamemath.Normalize2(toMarker)
	if dir == (mgl64.Vec2{}) {
		return out, nil
	}

	lag := toMarker.Len() - feedSpeed*p.cfg.LookAheadTime
	desired := feedSpeed
	if req.Loops.Distance != nil {
		desired += req.Loops.Distance.Update(lag, req.DT)
	}
	desired = gamemath.Clamp(desired, 0, p.cfg.MaxSpeed)

	speed := desired
	if req.Loops.Speed != nil {
		speed = feedSpeed + req.Loops.Speed.Update(desired-feedSpeed, req.DT)
	}

	out.Movement = dir
	out.Speed = math.Max(0, speed)
	out.Direction = gamemath.Heading(dir.X(), dir.Y())
	return out, nil
}
