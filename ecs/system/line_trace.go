package system

import (
	"math"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
)

// firstBulletHit traces a bullet's path from `from` to `to` and returns the
// first wall or combatant other than owner it touches, with the fraction of
// the path travelled when it did.
func firstBulletHit(w *ecs.World, owner ecs.Entity, from, to common.Vec2) (ecs.Entity, float64, bool) {
	var (
		hit     ecs.Entity
		closest = math.Inf(1)
	)

	ecs.ForEach(w, component.WallComponent.Kind(), func(e ecs.Entity, wall *component.Wall) {
		if t, ok := segmentWallHit(from, to, wall, entity.BulletRadius); ok && t < closest {
			hit, closest = e, t
		}
	})

	ecs.ForEach3(w, component.CombatantComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *combat.Combatant, t *component.Transform, body *component.PhysicsBody) {
		if e == owner {
			return
		}
		center := t.Pos()
		if frac, ok := segmentCircleHit(from, to, center, body.Radius+entity.BulletRadius); ok && frac < closest {
			hit, closest = e, frac
		}
	})

	return hit, closest, !math.IsInf(closest, 1)
}

// segmentCircleHit returns the first fraction of the segment p0-p1 inside
// the circle. A segment starting inside hits at 0.
func segmentCircleHit(p0, p1, center common.Vec2, r float64) (float64, bool) {
	if r <= 0 {
		return 0, false
	}
	d := p1.Sub(p0)
	f := p0.Sub(center)

	c := f.X*f.X + f.Y*f.Y - r*r
	if c <= 0 {
		return 0, true
	}
	a := d.X*d.X + d.Y*d.Y
	if a == 0 {
		return 0, false
	}
	b := 2 * (f.X*d.X + f.Y*d.Y)
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// segmentWallHit walks the path in steps no longer than the bullet radius
// and reports the first sample within reach of the wall.
func segmentWallHit(p0, p1 common.Vec2, wall *component.Wall, radius float64) (float64, bool) {
	a := common.Vec2{X: wall.AX, Y: wall.AY}
	b := common.Vec2{X: wall.BX, Y: wall.BY}
	reach := wall.Thickness/2 + radius

	length := p1.Sub(p0).Len()
	steps := max(1, int(math.Ceil(length/math.Max(radius, 0.5))))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := p0.Add(p1.Sub(p0).Scale(t))
		if pointSegmentDistance(p, a, b) <= reach {
			return t, true
		}
	}
	return 0, false
}

func pointSegmentDistance(p, a, b common.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	ap := p.Sub(a)
	t := common.Clamp((ap.X*ab.X+ap.Y*ab.Y)/l2, 0, 1)
	return p.Sub(a.Add(ab.Scale(t))).Len()
}
