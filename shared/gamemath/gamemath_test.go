package gamemath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLerpClampsT(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 10.0, Lerp(0, 10, 3))
	assert.Equal(t, 0.0, Lerp(0, 10, -1))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.235, RoundTo(1.23456, 3))
	assert.Equal(t, 2.0, RoundTo(1.9999, 3))
}

func TestDeltaAngle(t *testing.T) {
	tests := []struct {
		current, target, want float64
	}{
		{0, 90, 90},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{-90, 90, 180},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DeltaAngle(tt.current, tt.target), 1e-9, "DeltaAngle(%v, %v)", tt.current, tt.target)
	}
}

func TestSmoothDampAngleConverges(t *testing.T) {
	var vel float64
	angle := 0.0
	for i := 0; i < 200; i++ {
		angle = SmoothDampAngle(angle, 90, &vel, 0.12, 0.02)
	}
	assert.InDelta(t, 90, angle, 0.01)
}

func TestSmoothDampAngleTakesShortestPath(t *testing.T) {
	var vel float64
	next := SmoothDampAngle(350, 10, &vel, 1, 0.1)
	assert.Greater(t, next, 350.0, "should rotate forward across 360")
}

func TestSmoothDampHoldsAtTarget(t *testing.T) {
	var vel float64
	assert.Equal(t, 45.0, SmoothDampAngle(45, 45, &vel, 1, 0.1))
	assert.Equal(t, 0.0, vel)
}

func TestHeading(t *testing.T) {
	assert.InDelta(t, 0, Heading(0, 1), 1e-9)
	assert.InDelta(t, 90, Heading(1, 0), 1e-9)
	assert.InDelta(t, -90, Heading(-1, 0), 1e-9)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, mgl64.Vec2{}, Normalize2(mgl64.Vec2{}))
	assert.Equal(t, mgl64.Vec3{}, Normalize3(mgl64.Vec3{1e-9, 0, 0}))

	n := Normalize2(mgl64.Vec2{3, 4})
	assert.InDelta(t, 1, n.Len(), 1e-12)
}

func TestPlanarLift(t *testing.T) {
	p := Planar(mgl64.Vec3{1, 2, 3})
	assert.Equal(t, mgl64.Vec2{1, 3}, p)
	assert.Equal(t, mgl64.Vec3{1, 7, 3}, Lift(p, 7))
	assert.InDelta(t, 5, HorizontalSpeed(mgl64.Vec3{3, -9, 4}), 1e-12)
	assert.False(t, math.IsNaN(Normalize3(mgl64.Vec3{}).X()))
}
