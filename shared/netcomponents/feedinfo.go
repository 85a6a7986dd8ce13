package netcomponents

import "github.com/yohamta/donburi"

// NetFeedInfoData describes the feed itself. The simulator syncs exactly
// one entity carrying it so clients learn the level and rate without a
// separate handshake.
type NetFeedInfoData struct {
	Name     string
	Level    string
	Version  string
	TickRate int
	SimTime  float64 // seconds since the simulation started
}

var NetFeedInfo = donburi.NewComponentType[NetFeedInfoData]()
