package component

// HitMarker is a short-lived entity spawned where a bullet dealt damage.
type HitMarker struct {
	Damage float64
}

var HitMarkerComponent = NewComponent[HitMarker]()
