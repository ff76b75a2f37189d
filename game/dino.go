package game

import (
	"github.com/pthm-cable/dinoevo/config"
	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/systems"
)

// Pose is the sprite state of an agent.
type Pose uint8

const (
	PoseStanding Pose = iota // airborne or idle
	PoseRunLeft
	PoseRunRight
	PoseDuckLeft
	PoseDuckRight
)

func (p Pose) String() string {
	switch p {
	case PoseStanding:
		return "dino"
	case PoseRunLeft:
		return "dinoLeftLeg"
	case PoseRunRight:
		return "dinoRightLeg"
	case PoseDuckLeft:
		return "dinoDuckLeftLeg"
	case PoseDuckRight:
		return "dinoDuckRightLeg"
	}
	return "unknown"
}

// Dino is one agent: a network plus its jump, duck and animation state.
type Dino struct {
	ID      int
	Fitness float64 // score at death

	brain *neural.Network
	vert  systems.Vertical

	ducking   bool
	leftLeg   bool
	legFrames int
	pose      Pose
	alive     bool
}

func newDino(id int, brain *neural.Network) *Dino {
	return &Dino{ID: id, brain: brain, alive: true, leftLeg: true}
}

// Think evaluates the network on the shared perception plus this agent's
// own flags and applies the decision.
func (d *Dino) Think(p Perception, lift float64) neural.Action {
	var airborne, ducking float64
	if d.vert.Airborne() {
		airborne = 1
	}
	if d.ducking {
		ducking = 1
	}
	action := d.brain.Think([neural.NumInputs]float64{
		p.CactusX, p.CactusY, p.BirdX, p.BirdY, p.Level, airborne, ducking,
	})
	d.Act(action, lift)
	return action
}

// Act applies a decision.
func (d *Dino) Act(a neural.Action, lift float64) {
	switch a {
	case neural.ActionJump:
		d.ducking = false
		d.vert.Jump(lift)
	case neural.ActionDuck:
		d.ducking = true
	case neural.ActionRun:
		d.ducking = false
	}
}

// NextFrame advances physics and the leg animation.
func (d *Dino) NextFrame(s *systems.Settings) {
	d.vert.Step(s.Gravity)

	if d.vert.Airborne() {
		d.pose = PoseStanding
		return
	}
	if d.legFrames >= s.LegsRate {
		d.leftLeg = !d.leftLeg
		d.legFrames = 0
	}
	switch {
	case d.ducking && d.leftLeg:
		d.pose = PoseDuckLeft
	case d.ducking:
		d.pose = PoseDuckRight
	case d.leftLeg:
		d.pose = PoseRunLeft
	default:
		d.pose = PoseRunRight
	}
	d.legFrames++
}

// Box returns the current hitbox. The ducking footprint applies only on the ground.
func (d *Dino) Box(cfg *config.Config) systems.Box {
	size := cfg.Sprites.Dino
	if d.ducking && !d.vert.Airborne() {
		size = cfg.Sprites.DinoDuck
	}
	return systems.Box{
		X: cfg.Dino.X,
		Y: cfg.Canvas.Height - size.H - cfg.Dino.GroundOffset + d.vert.RelY,
		W: size.W,
		H: size.H,
	}
}

// Genome returns a copy of the agent's genome.
func (d *Dino) Genome() neural.Genome {
	return d.brain.Serialize()
}

// Alive reports whether the agent is still running.
func (d *Dino) Alive() bool { return d.alive }

// Ducking reports the ducking flag.
func (d *Dino) Ducking() bool { return d.ducking }

// Vertical returns the jump state.
func (d *Dino) Vertical() systems.Vertical { return d.vert }

// Pose returns the sprite state.
func (d *Dino) Pose() Pose { return d.pose }
