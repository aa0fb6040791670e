package component

import "github.com/milk9111/topdown/common"

// Input stores per-tick, already debounced actions for an entity. The
// *Pressed fields are true only on the tick the action went down.
type Input struct {
	Move common.Vec2
	// Aim is the world position the entity aims at.
	Aim common.Vec2

	Shoot         bool
	ShootPressed  bool
	Reload        bool
	ReloadPressed bool
	Roll          bool
	RollPressed   bool

	PickupPressed     bool
	DropWeaponPressed bool
	NextWeaponPressed bool
	LastWeaponPressed bool
}

var InputComponent = NewComponent[Input]()
