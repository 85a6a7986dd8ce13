package feed

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/shared/messages"
	"github.com/automoto/pedsync/shared/netcomponents"
	"github.com/automoto/pedsync/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateError
)

// Client keeps a Table in sync with a remote feed simulator.
// Router callbacks run on necs goroutines and only touch mu-protected fields
// and the snapshot channel; Poll runs on the tick goroutine and owns the
// histories.
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	conn      *websocket.Conn
	info      netcomponents.NetFeedInfoData

	sessionID  string
	agents     []string
	staleAfter time.Duration
	now        func() time.Time

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	table     *Table
	histories map[AgentID]*History
	seq       uint32
	lastApply time.Time
	stale     bool
}

// NewClient creates a disconnected client. agents lists the ids this
// runtime binds pedestrians to; they are announced in Subscribe.
func NewClient(c cfg.FeedConfig, agents []AgentID) *Client {
	names := make([]string, len(agents))
	for i, id := range agents {
		names[i] = string(id)
	}
	table := NewTable()
	table.SetDown(true)
	return &Client{
		state:      StateDisconnected,
		sessionID:  uuid.NewString(),
		agents:     names,
		staleAfter: c.StaleAfter,
		now:        time.Now,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		table:      table,
		histories:  make(map[AgentID]*History),
		stale:      true,
	}
}

// Connect dials the feed in a background goroutine and subscribes once the
// socket is up.
func (c *Client) Connect(address string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Printf("[feed] connected to %s (session %s)", address, c.sessionID)
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(messages.Subscribe{
			SessionID: c.sessionID,
			Version:   netconfig.ProtocolVersion,
			Agents:    c.agents,
		}); err != nil {
			c.setError(fmt.Errorf("subscribe: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[feed] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[feed] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// Disconnect unsubscribes and closes the socket.
func (c *Client) Disconnect() {
	if c.State() == StateConnected {
		if err := c.SendMessage(messages.Unsubscribe{SessionID: c.sessionID}); err != nil {
			log.Printf("[feed] unsubscribe: %v", err)
		}
	}

	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
	c.table.SetDown(true)
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Info returns the last feed description received.
func (c *Client) Info() netcomponents.NetFeedInfoData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info
}

// Available reports whether the table currently answers lookups.
func (c *Client) Available() bool {
	return c.table.Available()
}

// SimTime is the feed clock of the last snapshot, in seconds.
func (c *Client) SimTime() float64 {
	return c.Info().SimTime
}

// SessionID identifies this runtime to the feed.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Table is the Source the client keeps up to date.
func (c *Client) Table() *Table {
	return c.table
}

// Agent implements Source.
func (c *Client) Agent(id AgentID) (AgentState, error) {
	return c.table.Agent(id)
}

// History returns the sample history of an agent, or nil.
func (c *Client) History(id AgentID) *History {
	return c.histories[id]
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// Poll applies the latest snapshot, if any, and updates staleness. Call it
// once per tick before the controllers run.
func (c *Client) Poll() {
	select {
	case snap := <-c.snapshotCh:
		c.apply(decodeSnapshot(snap), c.now())
	default:
	}
	c.checkStale(c.now())
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// decodeSnapshot turns a wire snapshot into per-entity component values.
// Components that fail to decode are dropped.
func decodeSnapshot(snapshot esync.WorldSnapshot) [][]any {
	out := make([][]any, 0, len(snapshot))
	for _, ent := range snapshot {
		var comps []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			comps = append(comps, instance)
		}
		out = append(out, comps)
	}
	return out
}

// apply replaces the table with the agents found in one decoded snapshot.
func (c *Client) apply(entities [][]any, at time.Time) {
	c.seq++
	states := make([]AgentState, 0, len(entities))
	present := make(map[AgentID]bool, len(entities))

	for _, comps := range entities {
		var (
			agent  *netcomponents.NetAgentData
			pos    *netcomponents.NetPositionData
			vel    *netcomponents.NetVelocityData
			hasVel bool
		)
		for _, data := range comps {
			switch v := data.(type) {
			case netcomponents.NetAgentData:
				agent = &v
			case netcomponents.NetPositionData:
				pos = &v
			case netcomponents.NetVelocityData:
				vel = &v
				hasVel = true
			case netcomponents.NetFeedInfoData:
				c.mu.Lock()
				c.info = v
				c.mu.Unlock()
			}
		}
		if agent == nil || pos == nil {
			continue
		}

		st := AgentState{
			ID:        AgentID(agent.ID),
			Position:  pos.Vec2(),
			Occupied:  agent.Occupied,
			VehicleID: AgentID(agent.VehicleID),
			Seq:       c.seq,
		}
		if hasVel {
			st.Velocity = vel.Vec2()
		}

		h := c.histories[st.ID]
		if h == nil {
			h = &History{}
			c.histories[st.ID] = h
		}
		h.Store(Sample{State: st, ReceivedAt: at})
		if !hasVel {
			if v, ok := h.EstimateVelocity(); ok {
				st.Velocity = v
			}
		}

		present[st.ID] = true
		states = append(states, st)
	}

	for id := range c.histories {
		if !present[id] {
			delete(c.histories, id)
		}
	}

	c.table.Replace(states)
	c.lastApply = at
}

// checkStale marks the table down when no snapshot arrived within
// staleAfter, and back up once snapshots resume.
func (c *Client) checkStale(now time.Time) {
	stale := c.lastApply.IsZero() || (c.staleAfter > 0 && now.Sub(c.lastApply) > c.staleAfter)
	if stale == c.stale {
		return
	}
	c.stale = stale
	c.table.SetDown(stale)
	if stale {
		log.Printf("[feed] no snapshot for %v, feed marked unavailable", now.Sub(c.lastApply))
	} else {
		log.Printf("[feed] snapshots resumed, %d agents", c.table.Len())
	}
}
