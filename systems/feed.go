package systems

import (
	"github.com/automoto/pedsync/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateFeed applies the latest feed snapshot. It runs before the
// pedestrians so every controller in a tick sees the same feed state.
func UpdateFeed(e *ecs.ECS) {
	entry, ok := components.Feed.First(e.World)
	if !ok {
		return
	}
	if link := components.Feed.Get(entry).Link; link != nil {
		link.Poll()
	}
}

// FeedStatus reports whether the feed answers and its clock. Without a live
// link the feed is always considered up.
func FeedStatus(e *ecs.ECS) (ok bool, simTime float64) {
	entry, found := components.Feed.First(e.World)
	if !found {
		return false, 0
	}
	link := components.Feed.Get(entry).Link
	if link == nil {
		return true, 0
	}
	return link.Available(), link.SimTime()
}
