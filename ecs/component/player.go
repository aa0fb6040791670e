package component

type Player struct {
	Index        int
	MoveSpeed    float64
	RollSpeed    float64
	RollDuration float64
	Radius       float64
}

var PlayerComponent = NewComponent[Player]()
