package components

import (
	"github.com/automoto/pedsync/feed"
	"github.com/yohamta/donburi"
)

// Link is a live feed connection refreshed once per tick.
type Link interface {
	Poll()
	Available() bool
	SimTime() float64
}

// FeedData stores the feed source (singleton component). Link is nil when
// the source is filled by something other than the tick loop.
type FeedData struct {
	Link    Link
	Source  feed.Source
	Pursuit *feed.Pursuit
}

var Feed = donburi.NewComponentType[FeedData]()
