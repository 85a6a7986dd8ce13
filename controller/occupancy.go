package controller

import (
	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/shared/netconfig"
)

// Occupancy tracks how long an agent has been reported inside a vehicle and
// decides when the pedestrian must be corrected onto the feed position.
type Occupancy struct {
	delay  float64
	policy cfg.CorrectionPolicy

	dwell float64
	mode  netconfig.Mode
}

// NewOccupancy creates a tracker in ModeTracking with no dwell.
func NewOccupancy(delay float64, policy cfg.CorrectionPolicy) *Occupancy {
	return &Occupancy{delay: delay, policy: policy}
}

// Tick advances the dwell timer by dt and returns the mode for this tick.
func (o *Occupancy) Tick(occupied bool, dt float64) netconfig.Mode {
	if !occupied {
		o.dwell = 0
		o.mode = netconfig.ModeTracking
		return o.mode
	}

	if o.dwell+dt < o.delay {
		o.dwell += dt
		o.mode = netconfig.ModeInsideVehicle
		return o.mode
	}

	o.mode = netconfig.ModeCorrecting
	if o.policy == cfg.PolicyReset {
		o.dwell = 0
	} else {
		o.dwell += dt
	}
	return o.mode
}

// Reset returns to ModeTracking with no dwell.
func (o *Occupancy) Reset() {
	o.dwell = 0
	o.mode = netconfig.ModeTracking
}

func (o *Occupancy) Mode() netconfig.Mode { return o.mode }
func (o *Occupancy) Dwell() float64       { return o.dwell }
