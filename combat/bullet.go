package combat

import "github.com/milk9111/topdown/common"

// Bullet is a projectile in flight. Damage is fixed when it is spawned.
type Bullet struct {
	Angle    float64
	Speed    float64
	Damage   float64
	Distance float64
	Traveled float64
}

// Advance moves the bullet along its angle for dt seconds and returns the
// displacement.
func (b *Bullet) Advance(dt float64) common.Vec2 {
	if b == nil || dt <= 0 {
		return common.Vec2{}
	}
	step := b.Speed * dt
	b.Traveled += step
	return common.FromAngle(b.Angle).Scale(step)
}

// Exhausted reports whether the bullet has flown past its distance budget.
func (b *Bullet) Exhausted() bool {
	return b != nil && b.Traveled > b.Distance
}
