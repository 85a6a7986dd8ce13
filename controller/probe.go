package controller

import "github.com/go-gl/mathgl/mgl64"

// GroundProbe tests a sphere under the body against the ground layers.
type GroundProbe struct {
	space  SpatialQuery
	offset float64
	radius float64
	layers []string
}

// NewGroundProbe creates a probe. The sphere center sits at
// y - offset, so a negative offset raises it.
func NewGroundProbe(space SpatialQuery, offset, radius float64, layers []string) GroundProbe {
	return GroundProbe{space: space, offset: offset, radius: radius, layers: layers}
}

// Check reports whether the body at pos touches the ground.
func (g GroundProbe) Check(pos mgl64.Vec3) bool {
	center := mgl64.Vec3{pos.X(), pos.Y() - g.offset, pos.Z()}
	return g.space.CheckGroundOverlap(center, g.radius, g.layers...)
}
