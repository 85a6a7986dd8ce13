package components

import "github.com/yohamta/donburi"

// RuntimeData stores loop bookkeeping (singleton component)
type RuntimeData struct {
	Tick uint64
	DT   float64 // fixed step in seconds
	Time float64 // local seconds since start
}

var Runtime = donburi.NewComponentType[RuntimeData]()
