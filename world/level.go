// Package world is the local collision world of the pedestrian runtime:
// a resolv space built from level geometry, ground queries against it and
// the collision-resolved bodies the controllers move.
package world

import (
	"fmt"
	"io/fs"
	"log"
	"math"

	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// resolv tags
const (
	TagSolid  = "solid"
	TagGround = leveldata.LayerGround
	TagBody   = "pedestrian"
	tagProbe  = "probe"
)

// unitsPerMeter scales meters to resolv space units. resolv assumes
// pixel-sized units when mapping bounds to cells, so the space works in
// centimeters.
const (
	unitsPerMeter = 100.0
	cellSize      = 100
)

func toSpace(m float64) float64   { return m * unitsPerMeter }
func fromSpace(u float64) float64 { return u / unitsPerMeter }

// slab is the vertical extent of a ground object, stored in Object.Data.
type slab struct {
	top, bottom float64
}

// Level holds the collision space and the parsed level data.
type Level struct {
	Space *resolv.Space
	Data  *leveldata.CollisionData
}

// NewLevel builds a resolv.Space from parsed collision data. One space cell
// is one meter; resolv Y is world Z. groundThickness is the depth of each
// ground slab below its top.
func NewLevel(data *leveldata.CollisionData, groundThickness float64) *Level {
	w := int(math.Ceil(data.Width)) * cellSize
	d := int(math.Ceil(data.Depth)) * cellSize
	space := resolv.NewSpace(w, d, cellSize, cellSize)

	for _, g := range data.Ground {
		obj := newRect(g.X, g.Z, g.W, g.D, TagGround)
		obj.Data = slab{top: g.Height, bottom: g.Height - groundThickness}
		space.Add(obj)
	}
	for _, r := range data.Walls {
		space.Add(newRect(r.X, r.Z, r.W, r.D, TagSolid))
	}

	log.Printf("[world] loaded level: %d ground tiles, %d walls, %d spawn points, %.0fx%.0f m",
		len(data.Ground), len(data.Walls), len(data.SpawnPoints), data.Width, data.Depth)

	return &Level{Space: space, Data: data}
}

// LoadLevel loads levels/<name>.tmx from fsys.
func LoadLevel(fsys fs.FS, name string, groundThickness float64) (*Level, error) {
	data, err := leveldata.LoadCollisionData(fsys, "levels/"+name+".tmx")
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	return NewLevel(data, groundThickness), nil
}

// GroundHeightAt returns the ground top under the planar point.
func (l *Level) GroundHeightAt(x, z float64) (float64, bool) {
	return l.Data.GroundHeightAt(x, z)
}

// CheckGroundOverlap reports whether a sphere overlaps any object carrying
// one of the mask tags. Only ground slabs have a vertical extent; other
// tagged objects are treated as infinitely tall.
func (l *Level) CheckGroundOverlap(center mgl64.Vec3, radius float64, mask ...string) bool {
	if len(mask) == 0 || radius <= 0 {
		return false
	}

	probe := newRect(center.X()-radius, center.Z()-radius, 2*radius, 2*radius, tagProbe)
	l.Space.Add(probe)
	defer l.Space.Remove(probe)

	check := probe.Check(0, 0, mask...)
	if check == nil {
		return false
	}

	for _, obj := range check.ObjectsByTags(mask...) {
		if !circleOverlapsRect(center.X(), center.Z(), radius, obj) {
			continue
		}
		s, ok := obj.Data.(slab)
		if !ok {
			return true
		}
		if center.Y()-radius <= s.top && center.Y()+radius >= s.bottom {
			return true
		}
	}
	return false
}

// newRect creates a rectangle object from meter coordinates.
func newRect(x, z, w, d float64, tags ...string) *resolv.Object {
	obj := resolv.NewObject(toSpace(x), toSpace(z), toSpace(w), toSpace(d), tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, toSpace(w), toSpace(d)))
	return obj
}

func circleOverlapsRect(cx, cz, r float64, obj *resolv.Object) bool {
	x, z := fromSpace(obj.X), fromSpace(obj.Y)
	nx := math.Max(x, math.Min(cx, x+fromSpace(obj.W)))
	nz := math.Max(z, math.Min(cz, z+fromSpace(obj.H)))
	dx, dz := cx-nx, cz-nz
	return dx*dx+dz*dz <= r*r
}
