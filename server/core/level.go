package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/automoto/pedsync/assets"
	"github.com/automoto/pedsync/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidLevel = errors.New("invalid level")

// LoadLevel loads and validates the agent definitions of a level.
func LoadLevel(fsys fs.FS, name string) (*leveldata.CollisionData, error) {
	data, err := assets.LoadLevel(fsys, name)
	if err != nil {
		return nil, err
	}
	if err := ValidateLevel(data); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return data, nil
}

// ValidateLevel checks that every agent has a unique id and an existing
// route, and that boarding schedules name a simulated vehicle. Spawn points
// bound to agents the level does not simulate are only logged.
func ValidateLevel(data *leveldata.CollisionData) error {
	kinds := make(map[string]leveldata.AgentKind, len(data.Agents))
	for _, def := range data.Agents {
		if def.ID == "" {
			return fmt.Errorf("%w: agent without id", ErrInvalidLevel)
		}
		if _, dup := kinds[def.ID]; dup {
			return fmt.Errorf("%w: duplicate agent %q", ErrInvalidLevel, def.ID)
		}
		if _, ok := data.Routes[def.Route]; !ok {
			return fmt.Errorf("%w: agent %q uses unknown route %q", ErrInvalidLevel, def.ID, def.Route)
		}
		kinds[def.ID] = def.Kind
	}

	for _, def := range data.Agents {
		if def.BoardVehicle == "" {
			continue
		}
		if def.Kind != leveldata.KindPedestrian {
			return fmt.Errorf("%w: %s %q cannot board", ErrInvalidLevel, def.Kind, def.ID)
		}
		if kinds[def.BoardVehicle] != leveldata.KindVehicle {
			return fmt.Errorf("%w: agent %q boards %q, which is not a vehicle", ErrInvalidLevel, def.ID, def.BoardVehicle)
		}
		if def.RideFor <= 0 {
			return fmt.Errorf("%w: agent %q rides for %v seconds", ErrInvalidLevel, def.ID, def.RideFor)
		}
	}

	for _, sp := range data.SpawnPoints {
		if _, ok := kinds[sp.Agent]; !ok {
			log.Printf("[feed] spawn point at (%.1f, %.1f) is bound to %q, which is not simulated", sp.X, sp.Z, sp.Agent)
		}
	}
	return nil
}

// routePoints converts a level route to feed-plane waypoints.
func routePoints(r leveldata.Route) []mgl64.Vec2 {
	points := make([]mgl64.Vec2, len(r.Points))
	for i, p := range r.Points {
		points[i] = mgl64.Vec2{p.X, p.Z}
	}
	return points
}
