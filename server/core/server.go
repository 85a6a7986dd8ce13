package core

import (
	"fmt"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/shared/crash"
	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/automoto/pedsync/shared/loop"
	"github.com/automoto/pedsync/shared/messages"
	"github.com/automoto/pedsync/shared/netcomponents"
	"github.com/automoto/pedsync/shared/netconfig"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Session is one subscribed pedestrian runtime.
type Session struct {
	ID     string
	Agents []string
	Since  time.Time
}

// Server runs the simulation and syncs every agent to connected clients.
type Server struct {
	world     donburi.World
	sim       *Sim
	loop      *loop.Loop
	transport *transports.WsServerTransport

	sessions map[*router.NetworkClient]Session
	commands []func()
	mu       sync.RWMutex
}

// NewServer creates the simulation for data and marks its entities for
// network sync. protocol.RegisterComponents must have been called.
func NewServer(c cfg.SimConfig, data *leveldata.CollisionData) (*Server, error) {
	world := donburi.NewWorld()

	// Set up the world for esync
	srvsync.UseEsync(world)

	sim, err := NewSim(world, c.Name, c.Level, data, c.TickRate)
	if err != nil {
		return nil, err
	}

	for _, e := range sim.Entities() {
		entity := e
		if err := srvsync.NetworkSync(world, &entity,
			srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
			netcomponents.NetAgent,
		); err != nil {
			return nil, fmt.Errorf("network sync agent: %w", err)
		}
	}
	info := sim.InfoEntity()
	if err := srvsync.NetworkSync(world, &info, netcomponents.NetFeedInfo); err != nil {
		return nil, fmt.Errorf("network sync feed info: %w", err)
	}

	s := &Server{
		world:    world,
		sim:      sim,
		sessions: make(map[*router.NetworkClient]Session),
	}
	s.loop = loop.New("feed", c.TickRate, s.tick)

	s.setupRouterCallbacks()
	return s, nil
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) tick(dt float64) {
	crash.Guard("feed", nil, func() {
		s.ProcessCommands()
		s.sim.Step(dt)

		if err := srvsync.DoSync(); err != nil {
			log.Printf("[feed] sync error: %v", err)
		}
	})
}

// ProcessCommands runs the work queued by router callbacks on the tick
// goroutine.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	cmds := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

func (s *Server) enqueue(cmd func()) {
	s.mu.Lock()
	s.commands = append(s.commands, cmd)
	s.mu.Unlock()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[feed] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, sub messages.Subscribe) {
		s.enqueue(func() { s.onSubscribe(client, sub) })
	})

	router.On(func(client *router.NetworkClient, unsub messages.Unsubscribe) {
		s.enqueue(func() { s.onUnsubscribe(client, unsub) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[feed] client error: %v", err)
	})
}

func (s *Server) onSubscribe(client *router.NetworkClient, sub messages.Subscribe) {
	unknown, err := CheckSubscribe(sub, s.sim.Has)
	if err != nil {
		log.Printf("[feed] rejecting session %s from %s: %v", sub.SessionID, client.Id(), err)
		return
	}
	for _, id := range unknown {
		log.Printf("[feed] session %s binds %q, which is not simulated", sub.SessionID, id)
	}

	s.mu.Lock()
	s.sessions[client] = Session{ID: sub.SessionID, Agents: sub.Agents, Since: time.Now()}
	count := len(s.sessions)
	s.mu.Unlock()

	log.Printf("[feed] session %s subscribed for %d agents (%d sessions)", sub.SessionID, len(sub.Agents), count)
}

func (s *Server) onUnsubscribe(client *router.NetworkClient, unsub messages.Unsubscribe) {
	s.mu.Lock()
	sess, ok := s.sessions[client]
	if ok && sess.ID == unsub.SessionID {
		delete(s.sessions, client)
	}
	s.mu.Unlock()

	if ok {
		log.Printf("[feed] session %s unsubscribed after %v", sess.ID, time.Since(sess.Since).Round(time.Second))
	}
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[feed] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[feed] client %s disconnected", client.Id())
	}

	s.mu.Lock()
	delete(s.sessions, client)
	s.mu.Unlock()
}

// CheckSubscribe rejects a protocol version mismatch and returns the
// requested agents that known does not recognize.
func CheckSubscribe(sub messages.Subscribe, known func(id string) bool) ([]string, error) {
	if sub.Version != netconfig.ProtocolVersion {
		return nil, fmt.Errorf("protocol version %q, want %q", sub.Version, netconfig.ProtocolVersion)
	}
	var unknown []string
	for _, id := range sub.Agents {
		if !known(id) {
			unknown = append(unknown, id)
		}
	}
	return unknown, nil
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Sim returns the simulation.
func (s *Server) Sim() *Sim {
	return s.sim
}

// SessionCount returns the number of subscribed sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
