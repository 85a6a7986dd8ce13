package protocol

import (
	"github.com/automoto/pedsync/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetAgent    uint = 10
	SyncIDNetPosition uint = 11
	SyncIDNetVelocity uint = 12
	SyncIDNetFeedInfo uint = 13
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPosition uint8 = 11
	InterpIDNetVelocity uint8 = 12
)

// RegisterComponents registers all feed components with necs for
// serialization. Both the simulator and the pedestrian runtime call it
// before any network operation.
func RegisterComponents() error {
	// Identity and occupancy: discrete, no interpolation
	if err := esync.RegisterComponent(
		SyncIDNetAgent,
		netcomponents.NetAgentData{},
		netcomponents.NetAgent,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetPosition,
		netcomponents.NetPositionData{},
		netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetVelocity,
		netcomponents.NetVelocityData{},
		netcomponents.NetVelocity,
		esync.WithInterpFn(InterpIDNetVelocity, netcomponents.LerpNetVelocity),
	); err != nil {
		return err
	}

	return esync.RegisterComponent(
		SyncIDNetFeedInfo,
		netcomponents.NetFeedInfoData{},
		netcomponents.NetFeedInfo,
	)
}
