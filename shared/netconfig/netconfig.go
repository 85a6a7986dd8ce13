// Package netconfig defines lightweight types shared between the pedestrian
// runtime, the debug view and the feed simulator. It must have zero
// dependencies beyond the standard library.
package netconfig

// ProtocolVersion is sent in Subscribe and published in the feed info; a
// mismatch is logged by both sides.
const ProtocolVersion = "1"

// Mode is the synchronization mode of a controlled pedestrian.
type Mode int

const (
	// ModeTracking follows the feed through feedback control.
	ModeTracking Mode = iota
	// ModeInsideVehicle means the feed reports the agent riding a vehicle
	// and the dwell delay has not elapsed yet.
	ModeInsideVehicle
	// ModeCorrecting snaps the pedestrian onto the authoritative position.
	ModeCorrecting
)

var modeNames = map[Mode]string{
	ModeTracking:      "tracking",
	ModeInsideVehicle: "inside_vehicle",
	ModeCorrecting:    "correcting",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}
