package component

import (
	"github.com/google/uuid"
	"github.com/milk9111/topdown/combat"
)

// WeaponSlot is a carried weapon with its live counters.
type WeaponSlot struct {
	ID      uuid.UUID
	Profile combat.Profile
}

// Armory is the list of weapons an owner carries. Current indexes the
// equipped slot; the equipped slot's profile is stale while its weapon
// entity exists.
type Armory struct {
	Slots   []WeaponSlot
	Current int
}

var ArmoryComponent = NewComponent[Armory]()

// Inventory holds item names whose modifiers apply to every shot.
type Inventory struct {
	Items []string
}

var InventoryComponent = NewComponent[Inventory]()
