package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroundProbeOffset(t *testing.T) {
	space := &fakeSpace{grounded: true}
	probe := NewGroundProbe(space, -0.14, 0.28, []string{"ground"})

	assert.True(t, probe.Check(mgl64.Vec3{1, 2, 3}))
	require.Len(t, space.centers, 1)
	assert.InDelta(t, 2.14, space.centers[0].Y(), 1e-9)
	assert.Equal(t, 1.0, space.centers[0].X())
	assert.Equal(t, 3.0, space.centers[0].Z())
	assert.Equal(t, []string{"ground"}, space.masks[0])

	space.grounded = false
	assert.False(t, probe.Check(mgl64.Vec3{}))
}
