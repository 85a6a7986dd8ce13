// Package leveldata provides TMX level parsing shared between the pedestrian
// runtime and the feed simulator. Pure data only: no resolv, no donburi.
//
// Distances are meters; one tile is one meter. TMX x maps to world/feed X
// and TMX y maps to world Z (feed Y).
package leveldata

// CollisionData holds all level data parsed from a TMX file.
type CollisionData struct {
	Ground      []GroundRect
	Walls       []WallRect
	SpawnPoints []SpawnPoint
	Routes      map[string]Route
	Agents      []AgentDef
	Width       float64
	Depth       float64
}

// GroundRect is a walkable surface tile whose top sits at Height.
type GroundRect struct {
	X, Z, W, D float64
	Height     float64
}

// WallRect is a planar obstacle.
type WallRect struct {
	X, Z, W, D float64
}

// SpawnPoint places a controlled pedestrian bound to a feed agent.
type SpawnPoint struct {
	X, Z  float64
	Agent string
}

// Route is an ordered polyline of planar waypoints.
type Route struct {
	Name   string
	Points []Point
}

// Point is a planar waypoint.
type Point struct {
	X, Z float64
}

// AgentKind distinguishes simulated pedestrians from vehicles.
type AgentKind string

const (
	KindPedestrian AgentKind = "pedestrian"
	KindVehicle    AgentKind = "vehicle"
)

// AgentDef describes one simulated feed agent.
type AgentDef struct {
	ID    string
	Kind  AgentKind
	Route string
	Speed float64 // m/s along the route

	// Boarding schedule (pedestrians only). Zero BoardAt disables boarding.
	BoardVehicle string
	BoardAt      float64 // seconds after start
	RideFor      float64 // seconds inside the vehicle
}
