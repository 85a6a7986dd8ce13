package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func triangle() []mgl64.Vec2 {
	return []mgl64.Vec2{{0, 0}, {4, 0}, {4, 3}}
}

func assertVec(t *testing.T, want, got mgl64.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), 1e-4)
	assert.InDelta(t, want.Y(), got.Y(), 1e-4)
}

func TestRouteMoverWalksLegs(t *testing.T) {
	m := NewRouteMover(triangle(), 2)
	assert.Equal(t, 12.0, m.Length())
	assertVec(t, mgl64.Vec2{0, 0}, m.Position())

	pos, vel := m.Update(1)
	assertVec(t, mgl64.Vec2{2, 0}, pos)
	assertVec(t, mgl64.Vec2{2, 0}, vel)

	// carries over the corner
	pos, vel = m.Update(1.5)
	assertVec(t, mgl64.Vec2{4, 1}, pos)
	assertVec(t, mgl64.Vec2{0, 2}, vel)

	// closes the loop back to the first waypoint
	pos, _ = m.Update(4)
	assertVec(t, mgl64.Vec2{1, 0}, pos)
	assertVec(t, pos, m.Position())
}

func TestRouteMoverStationary(t *testing.T) {
	tests := []struct {
		name   string
		points []mgl64.Vec2
		speed  float64
	}{
		{"single point", []mgl64.Vec2{{3, 3}}, 1},
		{"zero speed", triangle(), 0},
		{"coincident points", []mgl64.Vec2{{1, 1}, {1, 1}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRouteMover(tt.points, tt.speed)
			pos, vel := m.Update(5)
			assertVec(t, tt.points[0], pos)
			assert.Equal(t, mgl64.Vec2{}, vel)
		})
	}
}

func TestRouteMoverSkipsRepeatedWaypoints(t *testing.T) {
	m := NewRouteMover([]mgl64.Vec2{{0, 0}, {2, 0}, {2, 0}, {2, 2}}, 1)
	pos, vel := m.Update(3)
	assertVec(t, mgl64.Vec2{2, 1}, pos)
	assertVec(t, mgl64.Vec2{0, 1}, vel)
}

func TestRouteMoverRejoin(t *testing.T) {
	m := NewRouteMover(triangle(), 2)
	m.Rejoin(mgl64.Vec2{5, 1})
	assertVec(t, mgl64.Vec2{5, 1}, m.Position())

	// heads for the nearest waypoint (4, 0)
	pos, _ := m.Update(0.5)
	assertVec(t, mgl64.Vec2{5 - 0.7071, 1 - 0.7071}, pos)

	// then continues the route toward (4, 3)
	pos, vel := m.Update(1)
	assert.InDelta(t, 4, pos.X(), 1e-4)
	assert.Positive(t, pos.Y())
	assertVec(t, mgl64.Vec2{0, 2}, vel)
}

func TestRouteMoverRejoinOnWaypoint(t *testing.T) {
	m := NewRouteMover(triangle(), 1)
	m.Rejoin(mgl64.Vec2{4, 0})
	pos, _ := m.Update(1)
	assertVec(t, mgl64.Vec2{4, 1}, pos)
}
