package components

// Position is an actor's top-left corner in canvas pixels. Y grows downward.
type Position struct {
	X, Y float64
}
