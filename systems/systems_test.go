package systems

import (
	"testing"

	"github.com/automoto/pedsync/components"
	"github.com/automoto/pedsync/feed"
	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/automoto/pedsync/systems/factory"
	"github.com/automoto/pedsync/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type fakeLink struct {
	polls int
	up    bool
	t     float64
}

func (l *fakeLink) Poll()            { l.polls++ }
func (l *fakeLink) Available() bool  { return l.up }
func (l *fakeLink) SimTime() float64 { return l.t }

func quiet(string, ...any) {}

func newWorld(t *testing.T, link components.Link) (*ecs.ECS, *feed.Table) {
	t.Helper()
	data := &leveldata.CollisionData{Width: 8, Depth: 8}
	for z := 0; z < 8; z++ {
		for x := 0; x < 8; x++ {
			data.Ground = append(data.Ground, leveldata.GroundRect{X: float64(x), Z: float64(z), W: 1, D: 1})
		}
	}
	e := ecs.NewECS(donburi.NewWorld())
	table := feed.NewTable()
	factory.CreateRuntime(e, 0.05)
	factory.CreateLevel(e, "test", world.NewLevel(data, 0.5))
	factory.CreateFeed(e, link, table)
	return e, table
}

func TestPedestriansInSpawnOrder(t *testing.T) {
	e, table := newWorld(t, nil)
	for _, id := range []string{"c", "a", "b"} {
		table.Set(feed.AgentState{ID: feed.AgentID(id), Position: mgl64.Vec2{1, 1}})
	}

	for i, id := range []string{"c", "a", "b"} {
		_, err := factory.CreatePedestrian(e, leveldata.SpawnPoint{X: 1, Z: 1, Agent: id}, 2-i, quiet)
		require.NoError(t, err)
	}

	var got []feed.AgentID
	for _, p := range Pedestrians(e) {
		got = append(got, p.Agent)
	}
	assert.Equal(t, []feed.AgentID{"b", "a", "c"}, got)
}

func TestUpdateFeedPollsLink(t *testing.T) {
	link := &fakeLink{up: true, t: 12.5}
	e, _ := newWorld(t, link)

	UpdateFeed(e)
	UpdateFeed(e)
	assert.Equal(t, 2, link.polls)

	ok, simTime := FeedStatus(e)
	assert.True(t, ok)
	assert.Equal(t, 12.5, simTime)

	link.up = false
	ok, _ = FeedStatus(e)
	assert.False(t, ok)
}

func TestFeedStatusWithoutLink(t *testing.T) {
	e, _ := newWorld(t, nil)
	UpdateFeed(e)
	ok, _ := FeedStatus(e)
	assert.True(t, ok)

	empty := ecs.NewECS(donburi.NewWorld())
	ok, _ = FeedStatus(empty)
	assert.False(t, ok)
}

func TestUpdateRuntimeAdvancesClock(t *testing.T) {
	e, _ := newWorld(t, nil)
	for i := 0; i < 4; i++ {
		UpdateRuntime(e)
	}
	rt := GetRuntime(e)
	assert.Equal(t, uint64(4), rt.Tick)
	assert.InDelta(t, 0.2, rt.Time, 1e-9)
}

func TestUpdatePedestriansMovesTowardFeed(t *testing.T) {
	e, table := newWorld(t, nil)
	table.Set(feed.AgentState{ID: "p", Position: mgl64.Vec2{5, 1}})
	_, err := factory.CreatePedestrian(e, leveldata.SpawnPoint{X: 1, Z: 1, Agent: "p"}, 0, quiet)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		UpdatePedestrians(e)
	}

	f := Frame(e)
	require.Len(t, f.Rows, 1)
	assert.Greater(t, f.Rows[0].State.LastKnown.X(), 1.5)

	ShutdownPedestrians(e)
	assert.Zero(t, Frame(e).Rows[0].State.Speed)
}

func TestCreatePedestrianNeedsSingletons(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	_, err := factory.CreatePedestrian(e, leveldata.SpawnPoint{Agent: "p"}, 0, quiet)
	assert.ErrorIs(t, err, factory.ErrNoLevel)
}
