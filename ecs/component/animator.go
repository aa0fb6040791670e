package component

// Animator is the animation state this core writes and renderers read.
// While Manual is set the renderer must not advance Frame on its own.
type Animator struct {
	State  string
	Frame  int
	Manual bool
	FlipX  bool
}

var AnimatorComponent = NewComponent[Animator]()
