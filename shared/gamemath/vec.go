package gamemath

import "github.com/go-gl/mathgl/mgl64"

const normalizeEpsilon = 1e-5

// Planar drops the vertical component of a world position. World Y is up;
// the plane is (X, Z).
func Planar(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v.X(), v.Z()}
}

// Lift places a planar point at the given height.
func Lift(p mgl64.Vec2, y float64) mgl64.Vec3 {
	return mgl64.Vec3{p.X(), y, p.Y()}
}

// Normalize2 returns the unit vector of v, or the zero vector when v is too
// short to have a direction.
func Normalize2(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < normalizeEpsilon {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// Normalize3 is Normalize2 for three dimensions.
func Normalize3(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < normalizeEpsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// HorizontalSpeed is the magnitude of the planar part of a velocity.
func HorizontalSpeed(v mgl64.Vec3) float64 {
	return Planar(v).Len()
}
