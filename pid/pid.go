// Package pid implements the discrete PID loop used for pedestrian pursuit.
// The same type serves the distance loop and the speed loop.
package pid

// Gains holds the fixed tuning of a loop.
type Gains struct {
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
}

// Controller is a discrete PID loop. Output is unbounded; callers clamp.
type Controller struct {
	gains Gains

	// State
	integral    float64
	prevError   float64
	initialized bool
}

// New creates a loop with the given gains.
func New(kp, ki, kd float64) *Controller {
	return &Controller{gains: Gains{Kp: kp, Ki: ki, Kd: kd}}
}

// NewWithGains creates a loop from a Gains value.
func NewWithGains(g Gains) *Controller {
	return &Controller{gains: g}
}

// Reset clears the accumulated state.
func (c *Controller) Reset() {
	c.integral = 0
	c.prevError = 0
	c.initialized = false
}

// Update computes the control signal for error over dt.
func (c *Controller) Update(err, dt float64) float64 {
	p := c.gains.Kp * err

	if dt > 0 {
		c.integral += err * dt
	}
	i := c.gains.Ki * c.integral

	// No derivative on the first sample to avoid a kick.
	var d float64
	if c.initialized && dt > 0 {
		d = c.gains.Kd * (err - c.prevError) / dt
	}

	c.prevError = err
	c.initialized = true

	return p + i + d
}

// Gains returns the loop tuning.
func (c *Controller) Gains() Gains {
	return c.gains
}

// Diagnostics returns the loop internals for logging and debug views.
func (c *Controller) Diagnostics() Diagnostics {
	return Diagnostics{
		Error:    c.prevError,
		Integral: c.integral,
		P:        c.gains.Kp * c.prevError,
		I:        c.gains.Ki * c.integral,
	}
}

// Diagnostics contains PID internal state for monitoring
type Diagnostics struct {
	Error    float64
	Integral float64
	P        float64
	I        float64
}
