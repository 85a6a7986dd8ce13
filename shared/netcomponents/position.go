package netcomponents

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetPositionData is an agent position on the feed plane, in meters.
type NetPositionData struct {
	X, Y float64
}

var NetPosition = donburi.NewComponentType[NetPositionData]()

// Vec2 returns the position as a vector.
func (p NetPositionData) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// LerpNetPosition interpolates between two feed positions
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	return &NetPositionData{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
	}
}
