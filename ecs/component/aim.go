package component

import "github.com/milk9111/topdown/common"

// Aim is the weapon pose published for renderers, which draw the weapon at
// Angle+Sway. Muzzle is the world position of the barrel tip and Handle the
// point the owner holds.
type Aim struct {
	Angle  float64
	Sway   float64
	Flip   bool
	Handle common.Vec2
	Muzzle common.Vec2
}

var AimComponent = NewComponent[Aim]()
