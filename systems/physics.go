// Package systems contains the physics, collision, scrolling and difficulty
// rules of the runner world.
package systems

// Vertical is an agent's jump state. RelY is the offset above the ground
// line (negative is up); Velocity is in pixels per frame.
type Vertical struct {
	RelY     float64
	Velocity float64
}

// Airborne reports whether the agent is off the ground.
func (v Vertical) Airborne() bool {
	return v.RelY < 0
}

// Grounded reports whether the agent may jump.
func (v Vertical) Grounded() bool {
	return v.RelY == 0
}

// Jump launches the agent if it is exactly on the ground.
// Returns false when already airborne.
func (v *Vertical) Jump(lift float64) bool {
	if !v.Grounded() {
		return false
	}
	v.Velocity = -lift
	return true
}

// Step advances one frame under gravity and lands the agent when it
// reaches the ground again.
func (v *Vertical) Step(gravity float64) {
	v.Velocity += gravity
	v.RelY += v.Velocity
	if v.RelY >= 0 {
		v.RelY = 0
		v.Velocity = 0
	}
}
