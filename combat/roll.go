package combat

import "github.com/milk9111/topdown/common"

// RollFrames is the number of animation steps a roll is split into.
const RollFrames = 9

// DefaultRollDirection is used when the owner is standing still.
var DefaultRollDirection = common.Vec2{X: 0, Y: 1}

// RollState is a dodge roll in progress. Frame starts at 1 and counts the
// next step to reach.
type RollState struct {
	Direction common.Vec2
	Elapsed   float64
	Frame     int
}

// NewRoll captures the roll direction from the owner's movement.
func NewRoll(move common.Vec2) RollState {
	dir := move.Normalize()
	if dir.IsZero() {
		dir = DefaultRollDirection
	}
	return RollState{Direction: dir, Frame: 1}
}

// Step advances the roll by dt. It returns how many animation steps were
// crossed and whether the roll is over.
func (r *RollState) Step(dt, duration float64) (advanced int, done bool) {
	if r == nil {
		return 0, true
	}
	r.Elapsed += dt
	if duration <= 0 {
		return 0, true
	}
	step := duration / RollFrames
	for r.Frame <= RollFrames && r.Elapsed+gateEpsilon >= step*float64(r.Frame) {
		r.Frame++
		advanced++
	}
	return advanced, r.Elapsed+gateEpsilon >= duration
}

// Velocity is the constant roll velocity.
func (r *RollState) Velocity(speed float64) common.Vec2 {
	if r == nil {
		return common.Vec2{}
	}
	return r.Direction.Scale(speed)
}
