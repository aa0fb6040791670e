package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are filled in by the physics system.
type PhysicsBody struct {
	Body      *cp.Body
	Shape     *cp.Shape
	Radius    float64
	Mass      float64
	Friction  float64
	Kinematic bool
	Sensor    bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Wall is a static segment collider.
type Wall struct {
	AX, AY    float64
	BX, BY    float64
	Thickness float64
}

var WallComponent = NewComponent[Wall]()
