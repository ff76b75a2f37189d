// Package components defines ECS components for the obstacle world.
package components

// Kind is the category of a scrolling actor.
type Kind uint8

const (
	KindCactus Kind = iota // ground hazard
	KindBird               // aerial hazard
	KindCloud              // decoration, never collides
)

// Visual is the sprite state of an obstacle. Renderers switch on it; the
// simulation only uses it to pick a footprint.
type Visual uint8

const (
	VisualCactus Visual = iota
	VisualCactusDouble
	VisualCactusDoubleB
	VisualCactusTriple
	VisualBirdWingsUp
	VisualBirdWingsDown
	VisualCloud
)

// CactusVisuals lists the ground hazard variants a spawn picks from.
var CactusVisuals = []Visual{VisualCactus, VisualCactusDouble, VisualCactusDoubleB, VisualCactusTriple}

// Hazard identifies an actor and its current sprite.
type Hazard struct {
	Kind   Kind
	Visual Visual
	Frames int // frames since the last wing flap (birds only)
}

// Motion scales the category scroll speed for one instance.
type Motion struct {
	SpeedMod float64 // 1 for cacti, 0.6..1.4 for birds and clouds
}

// Spawn records creation order. Lower Seq spawned earlier.
type Spawn struct {
	Seq uint64
}
