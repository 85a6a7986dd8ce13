package world

import (
	"os"
	"testing"

	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCrossing(t *testing.T) *Level {
	t.Helper()
	level, err := LoadLevel(os.DirFS("../assets"), "crossing", 0.5)
	require.NoError(t, err)
	return level
}

// flatLevel is a 6x6 m floor at height 0 with one wall tile at (3, 2).
func flatLevel() *Level {
	data := &leveldata.CollisionData{Width: 6, Depth: 6}
	for z := 0; z < 6; z++ {
		for x := 0; x < 6; x++ {
			data.Ground = append(data.Ground, leveldata.GroundRect{X: float64(x), Z: float64(z), W: 1, D: 1})
		}
	}
	data.Walls = []leveldata.WallRect{{X: 3, Z: 2, W: 1, D: 1}}
	return NewLevel(data, 0.5)
}

func TestCheckGroundOverlap(t *testing.T) {
	level := loadCrossing(t)

	tests := []struct {
		name   string
		center mgl64.Vec3
		mask   []string
		want   bool
	}{
		{"standing on road", mgl64.Vec3{5.5, 0.14, 7.5}, []string{TagGround}, true},
		{"standing on curb", mgl64.Vec3{5.5, 0.29, 3.5}, []string{TagGround}, true},
		{"high above", mgl64.Vec3{5.5, 3, 7.5}, []string{TagGround}, false},
		{"below the slab", mgl64.Vec3{5.5, -2, 7.5}, []string{TagGround}, false},
		{"other layer", mgl64.Vec3{5.5, 0.14, 7.5}, []string{"water"}, false},
		{"no mask", mgl64.Vec3{5.5, 0.14, 7.5}, nil, false},
		{"off the map", mgl64.Vec3{-10, 0.14, -10}, []string{TagGround}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, level.CheckGroundOverlap(tt.center, 0.28, tt.mask...))
		})
	}
}

func TestBodyMovesFreely(t *testing.T) {
	level := flatLevel()
	b := NewBody(level, mgl64.Vec3{1.5, 0, 1.5}, 0.28, 0.3)

	b.Move(mgl64.Vec3{0.5, -0.1, 0.25})
	pos := b.Position()
	assert.InDelta(t, 2.0, pos.X(), 1e-6)
	assert.InDelta(t, 1.75, pos.Z(), 1e-6)
	assert.InDelta(t, 0.0, pos.Y(), 1e-9, "ground top holds the body")
}

func TestBodyStopsAtWall(t *testing.T) {
	level := flatLevel()
	b := NewBody(level, mgl64.Vec3{1.5, 0, 2.5}, 0.28, 0.3)

	b.Move(mgl64.Vec3{2, 0, 0})
	pos := b.Position()
	assert.LessOrEqual(t, pos.X(), 3-0.28+1e-6)
	assert.Greater(t, pos.X(), 1.5)
}

func TestBodyStepsOntoCurb(t *testing.T) {
	level := loadCrossing(t)
	b := NewBody(level, mgl64.Vec3{5.5, 0, 2.5}, 0.28, 0.3)

	b.Move(mgl64.Vec3{0, -0.03, 1})
	pos := b.Position()
	assert.InDelta(t, 3.5, pos.Z(), 1e-6)
	assert.InDelta(t, 0.15, pos.Y(), 1e-9)
	assert.True(t, level.CheckGroundOverlap(mgl64.Vec3{pos.X(), pos.Y() + 0.14, pos.Z()}, 0.28, TagGround))
}

func TestBodyFallsOffTheMap(t *testing.T) {
	level := flatLevel()
	b := NewBody(level, mgl64.Vec3{-3, 0, -3}, 0.28, 0.3)

	b.Move(mgl64.Vec3{0, -0.5, 0})
	assert.InDelta(t, -0.5, b.Position().Y(), 1e-9)
}

func TestBodyTeleportAndYaw(t *testing.T) {
	level := flatLevel()
	b := NewBody(level, mgl64.Vec3{1, 0, 1}, 0.28, 0.3)

	b.Teleport(mgl64.Vec3{4.5, 0, 4.5})
	pos := b.Position()
	assert.InDeltaSlice(t, []float64{4.5, 0, 4.5}, pos[:], 1e-9)

	b.SetYaw(-90)
	assert.InDelta(t, 270, b.Yaw(), 1e-9)
	b.SetYaw(725)
	assert.InDelta(t, 5, b.Yaw(), 1e-9)

	b.Remove()
}
