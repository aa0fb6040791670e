package component

// TTL is a frame-based time-to-live. The entity is destroyed once Frames
// reaches zero.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
