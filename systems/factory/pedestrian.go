package factory

import (
	"errors"
	"fmt"

	"github.com/automoto/pedsync/anim"
	"github.com/automoto/pedsync/archetypes"
	"github.com/automoto/pedsync/components"
	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/controller"
	"github.com/automoto/pedsync/feed"
	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/automoto/pedsync/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	ErrNoLevel = errors.New("no level entity")
	ErrNoFeed  = errors.New("no feed entity")
)

// CreatePedestrian places a body at the spawn point, binds a controller to
// the spawn's feed agent and initializes it. The level and feed singletons
// must exist; the audio singleton is optional.
func CreatePedestrian(ecs *ecs.ECS, sp leveldata.SpawnPoint, index int, logf controller.Logf) (*donburi.Entry, error) {
	levelEntry, ok := components.Level.First(ecs.World)
	if !ok {
		return nil, ErrNoLevel
	}
	feedEntry, ok := components.Feed.First(ecs.World)
	if !ok {
		return nil, ErrNoFeed
	}
	level := components.Level.Get(levelEntry).Level
	pursuit := components.Feed.Get(feedEntry).Pursuit

	y, _ := level.GroundHeightAt(sp.X, sp.Z)
	body := world.NewBody(level, mgl64.Vec3{sp.X, y, sp.Z}, cfg.Physics.BodyRadius, cfg.Physics.StepHeight)
	params := anim.NewParams()

	deps := controller.Deps{
		ID:        feed.AgentID(sp.Agent),
		Feed:      pursuit,
		Space:     level,
		Body:      body,
		Animation: params,
		Logf:      logf,
	}
	if audioEntry, ok := components.Audio.First(ecs.World); ok {
		if cues := components.Audio.Get(audioEntry).Cues; cues != nil {
			deps.Audio = cues
		}
	}

	ctl, err := controller.New(cfg.Controller, cfg.Physics, deps)
	if err != nil {
		body.Remove()
		return nil, fmt.Errorf("pedestrian %s: %w", sp.Agent, err)
	}
	ctl.Init()

	entry := archetypes.Pedestrian.Spawn(ecs)
	components.Pedestrian.SetValue(entry, components.PedestrianData{
		Agent:      deps.ID,
		Controller: ctl,
		Body:       body,
		Params:     params,
		Spawn:      index,
	})
	return entry, nil
}
