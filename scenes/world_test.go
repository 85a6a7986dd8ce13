package scenes

import (
	"testing"

	"github.com/automoto/pedsync/audio"
	"github.com/automoto/pedsync/feed"
	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/automoto/pedsync/shared/netconfig"
	"github.com/automoto/pedsync/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 0.02

func quiet(string, ...any) {}

// street is a 20x6 m flat floor with two pedestrians bound to the feed.
func street() *world.Level {
	data := &leveldata.CollisionData{Width: 20, Depth: 6}
	for z := 0; z < 6; z++ {
		for x := 0; x < 20; x++ {
			data.Ground = append(data.Ground, leveldata.GroundRect{X: float64(x), Z: float64(z), W: 1, D: 1})
		}
	}
	data.SpawnPoints = []leveldata.SpawnPoint{
		{X: 2, Z: 2, Agent: "ped1"},
		{X: 2, Z: 4, Agent: "ped2"},
	}
	return world.NewLevel(data, 0.5)
}

func TestWorldSceneTracksFeed(t *testing.T) {
	table := feed.NewTable()
	table.Set(feed.AgentState{ID: "ped1", Position: mgl64.Vec2{6, 2}, Velocity: mgl64.Vec2{1, 0}})
	table.Set(feed.AgentState{ID: "ped2", Position: mgl64.Vec2{2, 4}})

	cues := audio.NewCues(audio.DefaultSampleRate)
	ws := NewWorldScene(Options{
		LevelName: "street",
		Level:     street(),
		Source:    table,
		Cues:      cues,
		Logf:      quiet,
	})

	for i := 0; i < 100; i++ {
		require.NoError(t, ws.Update(dt))
	}

	f := ws.Frame()
	assert.Equal(t, uint64(100), f.Tick)
	assert.True(t, f.FeedOK)
	require.Len(t, f.Rows, 2)

	moving, idle := f.Rows[0].State, f.Rows[1].State
	assert.Equal(t, feed.AgentID("ped1"), moving.ID)
	assert.Equal(t, netconfig.ModeTracking, moving.Mode)
	assert.Greater(t, moving.LastKnown.X(), 3.0)
	assert.Contains(t, f.Rows[0].Anim, "Speed=")

	assert.Equal(t, feed.AgentID("ped2"), idle.ID)
	assert.InDelta(t, 2, idle.LastKnown.X(), 1e-6)
	assert.Zero(t, idle.Speed)

	steps, _ := cues.Counts()
	assert.Positive(t, steps)
}

func TestWorldSceneCorrectsOccupiedAgent(t *testing.T) {
	table := feed.NewTable()
	table.Set(feed.AgentState{ID: "ped1", Position: mgl64.Vec2{12, 3}, Occupied: true, VehicleID: "bus"})
	table.Set(feed.AgentState{ID: "ped2", Position: mgl64.Vec2{2, 4}})

	ws := NewWorldScene(Options{Level: street(), Source: table, Logf: quiet})

	// 4 s of dwell at 50 Hz, then the correction tick
	for i := 0; i < 201; i++ {
		require.NoError(t, ws.Update(dt))
	}

	st := ws.Frame().Rows[0].State
	assert.Equal(t, netconfig.ModeCorrecting, st.Mode)
	assert.InDelta(t, 12, st.LastKnown.X(), 1e-6)
	assert.InDelta(t, 3, st.LastKnown.Y(), 1e-6)
}

func TestWorldSceneRequiresSpawnPoints(t *testing.T) {
	level := world.NewLevel(&leveldata.CollisionData{Width: 2, Depth: 2}, 0.5)
	ws := NewWorldScene(Options{Level: level, Source: feed.NewTable(), Logf: quiet})

	assert.ErrorIs(t, ws.Update(dt), ErrNoSpawnPoints)
	assert.ErrorIs(t, ws.Update(dt), ErrNoSpawnPoints)
}

func TestWorldSceneClose(t *testing.T) {
	table := feed.NewTable()
	table.Set(feed.AgentState{ID: "ped1", Position: mgl64.Vec2{6, 2}, Velocity: mgl64.Vec2{1, 0}})
	table.Set(feed.AgentState{ID: "ped2", Position: mgl64.Vec2{2, 4}})

	ws := NewWorldScene(Options{Level: street(), Source: table, Logf: quiet})
	require.NoError(t, ws.Update(dt))
	ws.Close()
	ws.Close()

	before := ws.Frame()
	require.NoError(t, ws.Update(dt))
	assert.Equal(t, before.Tick, ws.Frame().Tick)
	assert.Zero(t, before.Rows[0].State.Speed)
}

func TestWorldSceneFrameBeforeUpdate(t *testing.T) {
	ws := NewWorldScene(Options{Level: street(), Source: feed.NewTable()})
	assert.Empty(t, ws.Frame().Rows)
	ws.Close()
}
