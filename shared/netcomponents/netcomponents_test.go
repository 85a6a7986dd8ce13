package netcomponents

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLerpNetPosition(t *testing.T) {
	got := LerpNetPosition(NetPositionData{0, 0}, NetPositionData{10, -4}, 0.25)
	assert.Equal(t, NetPositionData{2.5, -1}, *got)
	assert.Equal(t, mgl64.Vec2{2.5, -1}, got.Vec2())
}

func TestLerpNetVelocity(t *testing.T) {
	got := LerpNetVelocity(NetVelocityData{1, 1}, NetVelocityData{3, 5}, 0.5)
	assert.Equal(t, NetVelocityData{2, 3}, *got)
	assert.Equal(t, mgl64.Vec2{2, 3}, got.Vec2())
}
