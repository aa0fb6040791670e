package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// TargetTag marks training dummies.
type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()
