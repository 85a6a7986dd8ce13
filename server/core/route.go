package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RouteMover walks a closed polyline at constant speed. Each leg is a
// linear tween of the leg progress; the last waypoint leads back to the
// first.
type RouteMover struct {
	points []mgl64.Vec2
	speed  float64

	next     int // waypoint the current leg heads to
	from, to mgl64.Vec2
	duration float64
	elapsed  float64
	progress *gween.Tween

	pos, vel mgl64.Vec2
}

// NewRouteMover starts at the first waypoint. A route with fewer than two
// distinct points or a non-positive speed never moves.
func NewRouteMover(points []mgl64.Vec2, speed float64) *RouteMover {
	m := &RouteMover{points: points, speed: speed}
	if len(points) > 0 {
		m.pos = points[0]
	}
	if m.moves() {
		m.startLeg(points[0], 1)
	}
	return m
}

func (m *RouteMover) moves() bool {
	if len(m.points) < 2 || m.speed <= 0 {
		return false
	}
	for _, p := range m.points[1:] {
		if p != m.points[0] {
			return true
		}
	}
	return false
}

func (m *RouteMover) startLeg(from mgl64.Vec2, next int) {
	m.next = next % len(m.points)
	m.from = from
	m.to = m.points[m.next]
	m.duration = m.to.Sub(m.from).Len() / m.speed
	m.elapsed = 0
	m.progress = gween.New(0, 1, float32(m.duration), ease.Linear)
}

// Update advances the mover by dt seconds, carrying leftover time into the
// following legs.
func (m *RouteMover) Update(dt float64) (pos, vel mgl64.Vec2) {
	if !m.moves() {
		m.vel = mgl64.Vec2{}
		return m.pos, m.vel
	}

	remaining := dt
	for {
		if m.elapsed+remaining < m.duration {
			m.elapsed += remaining
			t, _ := m.progress.Update(float32(remaining))
			m.pos = m.from.Add(m.to.Sub(m.from).Mul(float64(t)))
			m.vel = m.to.Sub(m.from).Normalize().Mul(m.speed)
			return m.pos, m.vel
		}
		remaining -= m.duration - m.elapsed
		m.pos = m.to
		m.startLeg(m.to, m.next+1)
	}
}

// Rejoin walks from p to the nearest waypoint and resumes the route there.
func (m *RouteMover) Rejoin(p mgl64.Vec2) {
	m.pos = p
	if !m.moves() {
		return
	}
	nearest, best := 0, math.Inf(1)
	for i, wp := range m.points {
		if d := wp.Sub(p).Len(); d < best {
			nearest, best = i, d
		}
	}
	if best == 0 {
		m.startLeg(p, nearest+1)
		return
	}
	m.startLeg(p, nearest)
}

func (m *RouteMover) Position() mgl64.Vec2 { return m.pos }
func (m *RouteMover) Velocity() mgl64.Vec2 { return m.vel }

// Length is the length of the closed route.
func (m *RouteMover) Length() float64 {
	var total float64
	for i := range m.points {
		total += m.points[(i+1)%len(m.points)].Sub(m.points[i]).Len()
	}
	return total
}
