package config

import (
	"time"

	"github.com/automoto/pedsync/pid"
)

// CorrectionPolicy decides what happens to the dwell timer once a
// correction fires while the agent stays inside a vehicle.
type CorrectionPolicy string

const (
	// PolicyRefire keeps the dwell timer running: every further tick spent
	// inside the vehicle corrects again.
	PolicyRefire CorrectionPolicy = "refire"
	// PolicyReset zeroes the dwell timer after a correction: one correction
	// per delay window.
	PolicyReset CorrectionPolicy = "reset"
)

// Backend selects what drives pedestrian locomotion.
type Backend string

const (
	BackendFeed   Backend = "feed"
	BackendManual Backend = "manual"
)

// ControllerConfig contains the synchronization controller tuning
type ControllerConfig struct {
	// Movement
	SprintSpeed        float64 // catch-up speed when the position error is large
	RotationSmoothTime float64 // seconds to settle facing
	SpeedChangeRate    float64 // acceleration and deceleration

	// Speed blending
	SpeedOffset    float64 // band around the target inside which speed snaps
	CatchUpError   float64 // position error above which SprintSpeed is used
	SpeedPrecision int     // decimal places kept on blended speed
	BlendEpsilon   float64 // animation blend below this snaps to 0
	MotionSpeed    float64 // constant MotionSpeed animation parameter

	// Occupancy
	CorrectionDelay  float64 // seconds inside a vehicle before correcting
	CorrectionPolicy CorrectionPolicy

	// Feedback loops
	DistanceGains pid.Gains
	SpeedGains    pid.Gains

	// Audio
	FootstepVolume float64
	StrideLength   float64 // meters travelled per footstep

	Backend Backend
}

// PhysicsConfig contains vertical motion and ground contact values
type PhysicsConfig struct {
	Gravity          float64 // m/s², negative is down
	TerminalVelocity float64
	GroundedVelocity float64 // floor applied on landing, keeps the body pressed down
	JumpTimeout      float64 // seconds before a jump is ready again
	FallTimeout      float64 // seconds airborne before free fall

	// Ground probe
	GroundedOffset float64
	GroundedRadius float64
	GroundLayers   []string

	// Body
	BodyRadius      float64
	StepHeight      float64 // ledges lower than this are walked onto
	GroundThickness float64 // depth of a ground slab below its top
}

// PursuitConfig contains the feed-side control law values
type PursuitConfig struct {
	LookAheadTime      float64 // seconds of authoritative velocity to lead by
	MarkerRate         float64 // relaxation rate of the look-ahead marker
	MarkerSnapDistance float64 // marker jumps instead of relaxing past this
	StopSpeed          float64 // feed speed treated as standing still
	ArrivalRadius      float64 // error treated as arrived
	MaxSpeed           float64
}

// FeedConfig contains feed client values
type FeedConfig struct {
	Address    string
	StaleAfter time.Duration
}

// SimConfig contains feed simulator values
type SimConfig struct {
	Name     string
	Port     uint
	TickRate int
	Level    string
}

// RuntimeConfig contains the pedestrian runtime loop values
type RuntimeConfig struct {
	TickRate int
	Level    string
	Assets   string
}

var Controller ControllerConfig
var Physics PhysicsConfig
var Pursuit PursuitConfig
var Feed FeedConfig
var Sim SimConfig
var Runtime RuntimeConfig

func init() {
	Controller = ControllerConfig{
		SprintSpeed:        5.335,
		RotationSmoothTime: 1.0,
		SpeedChangeRate:    10.0,

		SpeedOffset:    0.1,
		CatchUpError:   0.1,
		SpeedPrecision: 3,
		BlendEpsilon:   0.01,
		MotionSpeed:    1.0,

		CorrectionDelay:  4.0,
		CorrectionPolicy: PolicyRefire,

		DistanceGains: pid.Gains{Kp: 15.0},
		SpeedGains:    pid.Gains{Kp: 1.0},

		FootstepVolume: 0.5,
		StrideLength:   0.7,

		Backend: BackendFeed,
	}

	Physics = PhysicsConfig{
		Gravity:          -15.0,
		TerminalVelocity: 53.0,
		GroundedVelocity: -2.0,
		JumpTimeout:      0.50,
		FallTimeout:      0.15,

		GroundedOffset: -0.14,
		GroundedRadius: 0.28,
		GroundLayers:   []string{"ground"},

		BodyRadius:      0.28,
		StepHeight:      0.3,
		GroundThickness: 0.5,
	}

	Pursuit = PursuitConfig{
		LookAheadTime:      0.5,
		MarkerRate:         5.0,
		MarkerSnapDistance: 5.0,
		StopSpeed:          0.05,
		ArrivalRadius:      0.1,
		MaxSpeed:           5.335,
	}

	Feed = FeedConfig{
		Address:    "localhost:7474",
		StaleAfter: 2 * time.Second,
	}

	Sim = SimConfig{
		Name:     "pedsync feed",
		Port:     7474,
		TickRate: 20,
		Level:    "crossing",
	}

	Runtime = RuntimeConfig{
		TickRate: 50,
		Level:    "crossing",
		Assets:   "assets",
	}
}
