package system

import (
	"math/rand/v2"

	"github.com/milk9111/topdown/ecs"
)

// Config wires the combat systems. Zero values are usable: no spread, no
// modifiers, a fresh physics space.
type Config struct {
	Rand      *rand.Rand
	Modifiers ModifierSource
	Physics   *PhysicsSystem
}

// NewCombatScheduler returns the systems in tick order. A bullet spawned in
// a tick moves in that tick, and a contact claims a bullet before its
// expiry is acted on.
func NewCombatScheduler(cfg Config) *ecs.Scheduler {
	physics := cfg.Physics
	if physics == nil {
		physics = NewPhysicsSystem()
	}
	return ecs.NewScheduler(
		NewArmorySystem(),
		NewRollSystem(),
		NewReloadTriggerSystem(),
		NewMovementSystem(),
		NewAimSystem(),
		NewShootSystem(cfg.Rand, cfg.Modifiers),
		NewReloadSystem(),
		NewBulletSystem(),
		physics,
		NewCollisionSystem(),
		NewBulletCleanupSystem(),
		NewDeathSystem(),
		NewTTLSystem(),
	)
}
