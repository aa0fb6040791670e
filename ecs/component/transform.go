package component

import "github.com/milk9111/topdown/common"

// Transform places an entity in arena units. Rotation is in radians.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

func (t Transform) Pos() common.Vec2 {
	return common.Vec2{X: t.X, Y: t.Y}
}

func (t *Transform) SetPos(p common.Vec2) {
	t.X, t.Y = p.X, p.Y
}

var TransformComponent = NewComponent[Transform]()
