package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	collisionTypeBullet cp.CollisionType = iota + 1
	collisionTypeWall
	collisionTypeCombatant
	collisionTypeBody
)

// PhysicsSystem mirrors bodies and walls into a Chipmunk space, steps it,
// and queues a contact-started event for every bullet that touches a wall
// or a combatant. Bullet paths are also traced segment by segment so fast
// bullets cannot skip through thin walls.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity

	// bullets whose contact this tick was already found by tracing
	traced   map[ecs.Entity]bool
	contacts []ecs.ContactEvent
}

type bodyInfo struct {
	body      *cp.Body
	shape     *cp.Shape
	static    bool
	kinematic bool
	bullet    bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		traced:   make(map[ecs.Entity]bool),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body. The next Update rebuilds the space from the world.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = newSpace()
	ps.handlersReady = false
	clear(ps.entities)
	clear(ps.shapes)
	clear(ps.traced)
	ps.contacts = ps.contacts[:0]
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.Reset()
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.pushBodies(w)

	clear(ps.traced)
	ps.contacts = ps.contacts[:0]
	ps.traceBullets(w)

	if dt := w.Delta(); dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
	for _, c := range ps.contacts {
		w.Events().Push(ecs.Event{Type: ecs.EventContactStarted, Data: c})
	}
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	begin := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		bullet, okA := sys.shapes[shapeA]
		other, okB := sys.shapes[shapeB]
		if !okA || !okB || sys.traced[bullet] {
			return true
		}
		sys.contacts = append(sys.contacts, ecs.ContactEvent{A: bullet, B: other})
		return true
	}

	for _, other := range []cp.CollisionType{collisionTypeWall, collisionTypeCombatant} {
		handler := ps.space.NewCollisionHandler(collisionTypeBullet, other)
		handler.UserData = ps
		handler.BeginFunc = begin
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach(w, component.WallComponent.Kind(), func(e ecs.Entity, wall *component.Wall) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		shape := cp.NewSegment(ps.space.StaticBody,
			cp.Vector{X: wall.AX, Y: wall.AY},
			cp.Vector{X: wall.BX, Y: wall.BY},
			wall.Thickness/2)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeWall)
		ps.space.AddShape(shape)
		ps.entities[e] = &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
		ps.shapes[shape] = e
	})

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if info, ok := ps.entities[e]; ok {
			pb.Body, pb.Shape = info.body, info.shape
			return
		}
		info := ps.createBodyInfo(w, e, pb, t)
		ps.entities[e] = info
		ps.shapes[info.shape] = e
		pb.Body, pb.Shape = info.body, info.shape
	})
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) *bodyInfo {
	radius := pb.Radius
	if radius <= 0 {
		radius = 1
	}
	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}

	var body *cp.Body
	if pb.Kinematic {
		body = cp.NewKinematicBody()
	} else {
		// Infinite moment: bodies slide but never spin.
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(pb.Friction)
	shape.SetSensor(pb.Sensor)

	isBullet := ecs.Has(w, e, component.BulletComponent.Kind())
	switch {
	case isBullet:
		shape.SetCollisionType(collisionTypeBullet)
	case ecs.Has(w, e, component.CombatantComponent.Kind()):
		shape.SetCollisionType(collisionTypeCombatant)
	default:
		shape.SetCollisionType(collisionTypeBody)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape, kinematic: pb.Kinematic, bullet: isBullet}
}

// pushBodies copies ECS state into the space. Bullets and kinematic bodies
// are placed where their transform says; dynamic bodies get their velocity
// and keep the position the solver gave them.
func (ps *PhysicsSystem) pushBodies(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		var vel cp.Vector
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vel = cp.Vector{X: v.X, Y: v.Y}
		}
		switch {
		case info.bullet:
			info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			info.body.SetVelocity(0, 0)
		case info.kinematic:
			info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			info.body.SetVelocityVector(vel)
		default:
			info.body.SetVelocityVector(vel)
		}
	}
}

// traceBullets finds the first wall or combatant on each bullet's path this
// tick. Bullets with a traced contact ignore the solver's contacts.
func (ps *PhysicsSystem) traceBullets(w *ecs.World) {
	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		to := t.Pos()
		hit, _, ok := firstBulletHit(w, ecs.Entity(b.Owner), b.From, to)
		if !ok {
			return
		}
		ps.traced[e] = true
		ps.contacts = append(ps.contacts, ecs.ContactEvent{A: e, B: hit})
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.kinematic || info.bullet {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X, t.Y = pos.X, pos.Y
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.WallComponent.Kind())) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
