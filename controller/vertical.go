package controller

import cfg "github.com/automoto/pedsync/config"

// VerticalParams are the physics constants of the vertical state machine.
type VerticalParams struct {
	Gravity          float64
	TerminalVelocity float64
	GroundedVelocity float64
	JumpTimeout      float64
	FallTimeout      float64
}

// VerticalParamsFrom extracts the vertical parameters from the physics
// config.
func VerticalParamsFrom(p cfg.PhysicsConfig) VerticalParams {
	return VerticalParams{
		Gravity:          p.Gravity,
		TerminalVelocity: p.TerminalVelocity,
		GroundedVelocity: p.GroundedVelocity,
		JumpTimeout:      p.JumpTimeout,
		FallTimeout:      p.FallTimeout,
	}
}

// VerticalOutput is the result of one vertical tick.
type VerticalOutput struct {
	Velocity    float64
	JumpReady   bool
	FreeFalling bool
	Landed      bool // first grounded tick after being airborne
}

// Vertical integrates gravity and tracks the jump and fall timeouts.
// No jump impulse is ever applied; JumpReady is bookkeeping only.
type Vertical struct {
	velocity    float64
	jumpTimeout float64
	fallTimeout float64
	freeFalling bool
	wasGrounded bool
}

// NewVertical creates a grounded state at rest with full timeouts.
func NewVertical(p VerticalParams) *Vertical {
	return &Vertical{
		jumpTimeout: p.JumpTimeout,
		fallTimeout: p.FallTimeout,
		wasGrounded: true,
	}
}

// Tick advances the state machine by dt.
func (v *Vertical) Tick(grounded bool, dt float64, p VerticalParams) VerticalOutput {
	landed := grounded && !v.wasGrounded
	v.wasGrounded = grounded

	if grounded {
		v.fallTimeout = p.FallTimeout
		v.freeFalling = false

		if v.velocity < 0 {
			v.velocity = p.GroundedVelocity
		}

		v.jumpTimeout -= dt
		if v.jumpTimeout < 0 {
			v.jumpTimeout = 0
		}
	} else {
		v.jumpTimeout = p.JumpTimeout

		if v.fallTimeout > 0 {
			v.fallTimeout -= dt
		}
		if v.fallTimeout <= 0 {
			v.fallTimeout = 0
			v.freeFalling = true
		}
	}

	if v.velocity < p.TerminalVelocity {
		v.velocity += p.Gravity * dt
	}
	if v.velocity < -p.TerminalVelocity {
		v.velocity = -p.TerminalVelocity
	}

	return VerticalOutput{
		Velocity:    v.velocity,
		JumpReady:   grounded && v.jumpTimeout <= 0,
		FreeFalling: v.freeFalling,
		Landed:      landed,
	}
}

func (v *Vertical) Velocity() float64 { return v.velocity }
