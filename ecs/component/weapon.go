package component

import (
	"github.com/google/uuid"
	"github.com/milk9111/topdown/combat"
)

// Weapon lives on its own entity next to its owner. ID identifies the
// weapon instance across equip, drop and pickup.
type Weapon struct {
	ID      uuid.UUID
	Profile combat.Profile
	Owner   uint64
}

var WeaponComponent = NewComponent[Weapon]()

// WeaponHolder points an owner at its equipped weapon entity.
type WeaponHolder struct {
	Weapon uint64
}

var WeaponHolderComponent = NewComponent[WeaponHolder]()
