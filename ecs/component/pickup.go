package component

type PickupKind int

const (
	PickupWeapon PickupKind = iota
	PickupItem
)

// Pickup is something lying on the floor. Weapon pickups carry the dropped
// weapon with its counters; item pickups name an item prefab.
type Pickup struct {
	Kind   PickupKind
	Name   string
	Weapon *WeaponSlot
}

var PickupComponent = NewComponent[Pickup]()
