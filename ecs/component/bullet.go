package component

import (
	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/common"
)

// Bullet is a projectile in flight. From is where the bullet was when the
// tick started. Expired is set once it has flown past its distance budget;
// the entity is removed at the end of the tick unless a contact removed it
// first.
type Bullet struct {
	combat.Bullet
	Owner   uint64
	From    common.Vec2
	Expired bool
}

var BulletComponent = NewComponent[Bullet]()
