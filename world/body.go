package world

import (
	"github.com/automoto/pedsync/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// Body is a collision-resolved pedestrian: a square footprint in the resolv
// space plus an altitude. Position is the footprint center at the feet.
type Body struct {
	level      *Level
	obj        *resolv.Object
	radius     float64
	stepHeight float64

	y   float64
	yaw float64
}

// NewBody places a body at p and adds it to the level space.
func NewBody(level *Level, p mgl64.Vec3, radius, stepHeight float64) *Body {
	obj := newRect(p.X()-radius, p.Z()-radius, 2*radius, 2*radius, TagBody)
	level.Space.Add(obj)

	return &Body{
		level:      level,
		obj:        obj,
		radius:     radius,
		stepHeight: stepHeight,
		y:          p.Y(),
	}
}

// Remove takes the body out of the level space.
func (b *Body) Remove() {
	b.level.Space.Remove(b.obj)
}

func (b *Body) Position() mgl64.Vec3 {
	return mgl64.Vec3{fromSpace(b.obj.X) + b.radius, b.y, fromSpace(b.obj.Y) + b.radius}
}

func (b *Body) Yaw() float64 { return b.yaw }

func (b *Body) SetYaw(deg float64) {
	b.yaw = gamemath.Repeat(deg, 360)
}

// Move slides the body along walls, walks it onto ground no higher than
// the step height and keeps it from sinking through the ground top.
func (b *Body) Move(d mgl64.Vec3) {
	startX, startZ := b.obj.X, b.obj.Y

	b.obj.X += b.resolve(toSpace(d.X()), 0)
	b.obj.Update()
	b.obj.Y += b.resolve(0, toSpace(d.Z()))
	b.obj.Update()

	pos := b.Position()
	if h, ok := b.level.GroundHeightAt(pos.X(), pos.Z()); ok && h-b.y > b.stepHeight {
		// ledge too high to step onto
		b.obj.X, b.obj.Y = startX, startZ
		b.obj.Update()
		pos = b.Position()
	}

	y := b.y + d.Y()
	if h, ok := b.level.GroundHeightAt(pos.X(), pos.Z()); ok && y < h && b.y >= h-b.stepHeight {
		y = h
	}
	b.y = y
}

// resolve shortens a single-axis step, in space units, so the footprint
// stops at the first solid it would enter.
func (b *Body) resolve(dx, dz float64) float64 {
	delta := dx + dz
	if delta == 0 {
		return 0
	}
	check := b.obj.Check(dx, dz, TagSolid)
	if check == nil {
		return delta
	}
	solids := check.ObjectsByTags(TagSolid)
	if len(solids) == 0 {
		return delta
	}
	contact := check.ContactWithObject(solids[0])
	if dx != 0 {
		return contact.X()
	}
	return contact.Y()
}

// Teleport places the body at p without collision.
func (b *Body) Teleport(p mgl64.Vec3) {
	b.obj.X = toSpace(p.X() - b.radius)
	b.obj.Y = toSpace(p.Z() - b.radius)
	b.obj.Update()
	b.y = p.Y()
}
