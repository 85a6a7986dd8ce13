package feed

import (
	"testing"
	"time"

	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agentEntity(id string, x, y float64, occupied bool, vel *netcomponents.NetVelocityData) []any {
	comps := []any{
		netcomponents.NetAgentData{ID: id, Kind: netcomponents.AgentPedestrian, Occupied: occupied},
		netcomponents.NetPositionData{X: x, Y: y},
	}
	if vel != nil {
		comps = append(comps, *vel)
	}
	return comps
}

func TestClientStartsUnavailable(t *testing.T) {
	c := NewClient(cfg.FeedConfig{StaleAfter: time.Second}, []AgentID{"a"})
	assert.NotEmpty(t, c.SessionID())

	_, err := c.Agent("a")
	assert.ErrorIs(t, err, ErrFeedUnavailable)
	assert.NoError(t, c.LastError())
}

func TestClientRecordsLastError(t *testing.T) {
	c := NewClient(cfg.FeedConfig{StaleAfter: time.Second}, nil)
	c.setError(ErrFeedUnavailable)

	assert.Equal(t, StateError, c.State())
	assert.ErrorIs(t, c.LastError(), ErrFeedUnavailable)
}

func TestClientApplySnapshot(t *testing.T) {
	c := NewClient(cfg.FeedConfig{StaleAfter: time.Second}, nil)
	now := time.Unix(1000, 0)

	c.apply([][]any{
		agentEntity("a", 1, 2, false, &netcomponents.NetVelocityData{SpeedX: 0.5}),
		agentEntity("b", 3, 4, true, nil),
		{netcomponents.NetFeedInfoData{Name: "sim", Level: "crossing", TickRate: 20}},
	}, now)
	c.checkStale(now)

	a, err := c.Agent("a")
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec2{1, 2}, a.Position)
	assert.Equal(t, mgl64.Vec2{0.5, 0}, a.Velocity)
	assert.False(t, a.Occupied)

	b, err := c.Agent("b")
	require.NoError(t, err)
	assert.True(t, b.Occupied)

	assert.Equal(t, "crossing", c.Info().Level)
	assert.Equal(t, 2, c.Table().Len())
}

func TestClientEstimatesMissingVelocity(t *testing.T) {
	c := NewClient(cfg.FeedConfig{StaleAfter: time.Second}, nil)
	now := time.Unix(1000, 0)

	c.apply([][]any{agentEntity("a", 0, 0, false, nil)}, now)
	c.apply([][]any{agentEntity("a", 0, 1, false, nil)}, now.Add(250*time.Millisecond))
	c.checkStale(now.Add(250 * time.Millisecond))

	a, err := c.Agent("a")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, a.Velocity.Y(), 1e-9)
	require.NotNil(t, c.History("a"))
}

func TestClientDropsVanishedAgents(t *testing.T) {
	c := NewClient(cfg.FeedConfig{StaleAfter: time.Second}, nil)
	now := time.Unix(1000, 0)

	c.apply([][]any{agentEntity("a", 0, 0, false, nil)}, now)
	c.apply([][]any{agentEntity("b", 0, 0, false, nil)}, now)
	c.checkStale(now)

	_, err := c.Agent("a")
	assert.ErrorIs(t, err, ErrAgentUnknown)
	assert.Nil(t, c.History("a"))
}

func TestClientStaleness(t *testing.T) {
	c := NewClient(cfg.FeedConfig{StaleAfter: time.Second}, nil)
	now := time.Unix(1000, 0)

	c.apply([][]any{agentEntity("a", 0, 0, false, nil)}, now)
	c.checkStale(now.Add(500 * time.Millisecond))
	_, err := c.Agent("a")
	require.NoError(t, err)

	c.checkStale(now.Add(2 * time.Second))
	_, err = c.Agent("a")
	assert.ErrorIs(t, err, ErrFeedUnavailable)

	c.apply([][]any{agentEntity("a", 0, 0, false, nil)}, now.Add(3*time.Second))
	c.checkStale(now.Add(3 * time.Second))
	_, err = c.Agent("a")
	assert.NoError(t, err)
}
