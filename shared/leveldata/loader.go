package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names recognised in TMX files.
const (
	LayerGround = "ground"
	LayerWalls  = "walls"
	GroupSpawns = "PedestrianSpawn"
	GroupRoutes = "Routes"
	GroupAgents = "Agents"
)

const defaultAgentPace = 1.3

// LoadCollisionData parses a TMX file. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
func LoadCollisionData(fsys fs.FS, tmxPath string) (*CollisionData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth == 0 || levelMap.TileHeight == 0 {
		return nil, fmt.Errorf("load TMX %s: zero tile size", tmxPath)
	}

	data := &CollisionData{
		Width:  float64(levelMap.Width),
		Depth:  float64(levelMap.Height),
		Routes: make(map[string]Route),
	}

	for _, layer := range levelMap.Layers {
		switch layer.Name {
		case LayerGround:
			parseGround(levelMap, layer, data)
		case LayerWalls:
			parseWalls(levelMap, layer, data)
		}
	}

	// Object coordinates are pixels; one tile is one meter.
	sx := 1 / float64(levelMap.TileWidth)
	sz := 1 / float64(levelMap.TileHeight)

	type waypoint struct {
		order int
		p     Point
	}
	waypoints := make(map[string][]waypoint)

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupSpawns:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.X * sx,
					Z:     o.Y * sz,
					Agent: o.Properties.GetString("agent"),
				})
			}
		case GroupRoutes:
			for _, o := range og.Objects {
				name := o.Properties.GetString("route")
				waypoints[name] = append(waypoints[name], waypoint{
					order: o.Properties.GetInt("order"),
					p:     Point{X: o.X * sx, Z: o.Y * sz},
				})
			}
		case GroupAgents:
			for _, o := range og.Objects {
				def := AgentDef{
					ID:           o.Properties.GetString("agent"),
					Kind:         AgentKind(o.Properties.GetString("kind")),
					Route:        o.Properties.GetString("route"),
					Speed:        o.Properties.GetFloat("speed"),
					BoardVehicle: o.Properties.GetString("boardVehicle"),
					BoardAt:      o.Properties.GetFloat("boardAt"),
					RideFor:      o.Properties.GetFloat("rideFor"),
				}
				if def.Kind == "" {
					def.Kind = KindPedestrian
				}
				if def.Speed <= 0 {
					def.Speed = defaultAgentPace
				}
				data.Agents = append(data.Agents, def)
			}
		}
	}

	for name, wps := range waypoints {
		sort.SliceStable(wps, func(i, j int) bool { return wps[i].order < wps[j].order })
		route := Route{Name: name, Points: make([]Point, len(wps))}
		for i, wp := range wps {
			route.Points[i] = wp.p
		}
		data.Routes[name] = route
	}

	// Sort spawns by agent for consistent assignment
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].Agent < data.SpawnPoints[j].Agent
	})
	sort.Slice(data.Agents, func(i, j int) bool {
		return data.Agents[i].ID < data.Agents[j].ID
	})

	return data, nil
}

func parseGround(levelMap *tiled.Map, layer *tiled.Layer, data *CollisionData) {
	for z := 0; z < levelMap.Height; z++ {
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[z*levelMap.Width+x]
			if tile.IsNil() {
				continue
			}

			var height float64
			if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
				height = tilesetTile.Properties.GetFloat("height")
			}

			data.Ground = append(data.Ground, GroundRect{
				X:      float64(x),
				Z:      float64(z),
				W:      1,
				D:      1,
				Height: height,
			})
		}
	}
}

func parseWalls(levelMap *tiled.Map, layer *tiled.Layer, data *CollisionData) {
	for z := 0; z < levelMap.Height; z++ {
		for x := 0; x < levelMap.Width; x++ {
			if layer.Tiles[z*levelMap.Width+x].IsNil() {
				continue
			}
			data.Walls = append(data.Walls, WallRect{X: float64(x), Z: float64(z), W: 1, D: 1})
		}
	}
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads
// each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*CollisionData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadCollisionData(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}

// Spawn returns the spawn point bound to agent.
func (d *CollisionData) Spawn(agent string) (SpawnPoint, bool) {
	for _, sp := range d.SpawnPoints {
		if sp.Agent == agent {
			return sp, true
		}
	}
	return SpawnPoint{}, false
}

// GroundHeightAt returns the highest ground top under the planar point.
func (d *CollisionData) GroundHeightAt(x, z float64) (float64, bool) {
	found := false
	var best float64
	for _, g := range d.Ground {
		if x < g.X || x >= g.X+g.W || z < g.Z || z >= g.Z+g.D {
			continue
		}
		if !found || g.Height > best {
			best = g.Height
			found = true
		}
	}
	return best, found
}
