package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// BulletSystem moves bullets along their angle and marks the ones that have
// flown past their distance budget. It never destroys anything; contacts
// get a chance to claim the bullet first.
type BulletSystem struct{}

func NewBulletSystem() *BulletSystem { return &BulletSystem{} }

func (s *BulletSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		if b.Expired {
			return
		}
		b.From = t.Pos()
		t.SetPos(b.From.Add(b.Advance(dt)))
		if b.Exhausted() {
			b.Expired = true
		}
	})
}

// BulletCleanupSystem destroys expired bullets that no contact removed.
type BulletCleanupSystem struct{}

func NewBulletCleanupSystem() *BulletCleanupSystem { return &BulletCleanupSystem{} }

func (s *BulletCleanupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.BulletComponent.Kind(), func(e ecs.Entity, b *component.Bullet) {
		if b.Expired {
			ecs.DestroyEntity(w, e)
		}
	})
}
