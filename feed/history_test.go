package feed

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(seq uint32, x float64, at time.Time) Sample {
	return Sample{
		State:      AgentState{ID: "a", Seq: seq, Position: mgl64.Vec2{x, 0}},
		ReceivedAt: at,
	}
}

func TestHistoryEmpty(t *testing.T) {
	var h History
	_, ok := h.Latest()
	assert.False(t, ok)
	_, ok = h.EstimateVelocity()
	assert.False(t, ok)
}

func TestHistoryStoreAndGet(t *testing.T) {
	var h History
	base := time.Unix(100, 0)
	for seq := uint32(1); seq <= 5; seq++ {
		h.Store(sampleAt(seq, float64(seq), base.Add(time.Duration(seq)*time.Second)))
	}

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, uint32(5), latest.State.Seq)

	s, ok := h.Get(3)
	require.True(t, ok)
	assert.Equal(t, 3.0, s.State.Position.X())

	_, ok = h.Get(6)
	assert.False(t, ok)
}

func TestHistoryOverwrite(t *testing.T) {
	var h History
	base := time.Unix(100, 0)
	for seq := uint32(1); seq <= historySize+2; seq++ {
		h.Store(sampleAt(seq, 0, base))
	}
	_, ok := h.Get(1)
	assert.False(t, ok, "slot reused by a later sequence")
	_, ok = h.Get(historySize + 1)
	assert.True(t, ok)
}

func TestHistoryEstimateVelocity(t *testing.T) {
	var h History
	base := time.Unix(100, 0)
	h.Store(sampleAt(1, 0, base))
	h.Store(sampleAt(2, 1, base.Add(500*time.Millisecond)))

	v, ok := h.EstimateVelocity()
	require.True(t, ok)
	assert.InDelta(t, 2.0, v.X(), 1e-9)
	assert.InDelta(t, 0.0, v.Y(), 1e-9)
}
