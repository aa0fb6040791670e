package component

// ArenaResetRequest is a marker used to ask the game loop to rebuild the
// arena. Systems create a short-lived entity with this component.
type ArenaResetRequest struct {
	Reason string
}

var ArenaResetRequestComponent = NewComponent[ArenaResetRequest]()
