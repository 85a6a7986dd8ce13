package scenes

import (
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/pedsync/audio"
	"github.com/automoto/pedsync/components"
	"github.com/automoto/pedsync/controller"
	"github.com/automoto/pedsync/debugview"
	"github.com/automoto/pedsync/feed"
	"github.com/automoto/pedsync/systems"
	"github.com/automoto/pedsync/systems/factory"
	"github.com/automoto/pedsync/world"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ErrNoSpawnPoints is returned when the level binds no pedestrian to the
// feed.
var ErrNoSpawnPoints = errors.New("no pedestrian spawn points defined in level")

// Options wires a WorldScene. Link, Cues and View are optional.
type Options struct {
	LevelName string
	Level     *world.Level
	Source    feed.Source
	Link      components.Link
	Cues      *audio.Cues
	View      *debugview.View
	ViewEvery uint64 // ticks between debug frames
	Logf      controller.Logf
}

// WorldScene is the pedestrian runtime: one ECS world holding the level,
// the feed, and a pedestrian per spawn point. It is headless and driven by
// a fixed-step loop.
type WorldScene struct {
	opts Options
	ecs  *ecs.ECS

	mu     sync.Mutex
	once   sync.Once
	err    error
	closed bool
}

func NewWorldScene(opts Options) *WorldScene {
	return &WorldScene{opts: opts}
}

// Update runs one tick of dt seconds. The world is built on the first call.
func (ws *WorldScene) Update(dt float64) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.once.Do(func() { ws.err = ws.configure(dt) })
	if ws.err != nil {
		return ws.err
	}
	if ws.closed {
		return nil
	}

	systems.GetRuntime(ws.ecs).DT = dt
	ws.ecs.Update()
	return nil
}

// Frame returns the current debug frame. Empty before the first Update.
func (ws *WorldScene) Frame() debugview.Frame {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.ecs == nil {
		return debugview.Frame{}
	}
	return systems.Frame(ws.ecs)
}

// Close shuts every controller down. Further updates are no-ops.
func (ws *WorldScene) Close() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.ecs == nil || ws.closed {
		return
	}
	ws.closed = true
	systems.ShutdownPedestrians(ws.ecs)
}

func (ws *WorldScene) configure(dt float64) error {
	if ws.opts.Level == nil || ws.opts.Source == nil {
		return errors.New("world scene needs a level and a feed source")
	}

	ecs := ecs.NewECS(donburi.NewWorld())

	// Feed first so every controller sees this tick's snapshot
	ecs.AddSystem(systems.UpdateFeed)
	ecs.AddSystem(systems.UpdatePedestrians)
	ecs.AddSystem(systems.UpdateAudio)
	if ws.opts.View != nil {
		ecs.AddSystem(systems.NewDebugSystem(ws.opts.View, ws.opts.ViewEvery))
	}
	ecs.AddSystem(systems.UpdateRuntime)

	ws.ecs = ecs

	factory.CreateRuntime(ws.ecs, dt)
	factory.CreateLevel(ws.ecs, ws.opts.LevelName, ws.opts.Level)
	factory.CreateFeed(ws.ecs, ws.opts.Link, ws.opts.Source)
	if ws.opts.Cues != nil {
		factory.CreateAudio(ws.ecs, ws.opts.Cues)
	}

	spawns := ws.opts.Level.Data.SpawnPoints
	if len(spawns) == 0 {
		return ErrNoSpawnPoints
	}
	for i, sp := range spawns {
		if _, err := factory.CreatePedestrian(ws.ecs, sp, i, ws.opts.Logf); err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
	}
	return nil
}
