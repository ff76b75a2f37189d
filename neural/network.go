package neural

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/dinoevo/rng"
)

// Initial value ranges for NewDefault.
const (
	initWeight = 1.0
	initBias   = 0.1
)

// Action is the decision an agent takes for one frame.
type Action uint8

const (
	ActionJump Action = iota // stop ducking and jump
	ActionDuck
	ActionRun // stop ducking
)

func (a Action) String() string {
	switch a {
	case ActionJump:
		return "jump"
	case ActionDuck:
		return "duck"
	case ActionRun:
		return "run"
	}
	return "unknown"
}

// Network is an evaluable 7-5-3 feedforward network.
type Network struct {
	genome Genome

	// Weights laid out per destination neuron for dot products.
	w1 [NumHidden][NumInputs]float64
	b1 [NumHidden]float64
	w2 [NumOutputs][NumHidden]float64
	b2 [NumOutputs]float64
}

// NewDefault creates a fully connected network with small random weights and biases.
func NewDefault(src *rng.Source) *Network {
	g := NewGenome()
	for i := range g.Neurons {
		g.Neurons[i].Bias = src.Range(-initBias, initBias)
	}
	for i := range g.Connections {
		g.Connections[i].Weight = src.Range(-initWeight, initWeight)
	}
	return build(g)
}

// Deserialize validates g and builds a network from a copy of it.
func Deserialize(g Genome) (*Network, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return build(g.Clone()), nil
}

// MustDeserialize is like Deserialize but panics on an invalid genome.
func MustDeserialize(g Genome) *Network {
	nn, err := Deserialize(g)
	if err != nil {
		panic(err)
	}
	return nn
}

func build(g Genome) *Network {
	nn := &Network{genome: g}
	for c, conn := range g.Connections {
		if c < firstOutputConn {
			in, h := conn.From, conn.To-firstHidden
			nn.w1[h][in] = conn.Weight
		} else {
			h, o := conn.From-firstHidden, conn.To-firstOutput
			nn.w2[o][h] = conn.Weight
		}
	}
	for h := 0; h < NumHidden; h++ {
		nn.b1[h] = g.Neurons[firstHidden+h].Bias
	}
	for o := 0; o < NumOutputs; o++ {
		nn.b2[o] = g.Neurons[firstOutput+o].Bias
	}
	return nn
}

// Serialize returns a copy of the network's genome.
func (nn *Network) Serialize() Genome {
	return nn.genome.Clone()
}

// Evaluate runs a forward pass. Hidden and output neurons use the logistic sigmoid.
func (nn *Network) Evaluate(inputs [NumInputs]float64) [NumOutputs]float64 {
	var hidden [NumHidden]float64
	for h := range hidden {
		hidden[h] = sigmoid(floats.Dot(nn.w1[h][:], inputs[:]) + nn.b1[h])
	}

	var out [NumOutputs]float64
	for o := range out {
		out[o] = sigmoid(floats.Dot(nn.w2[o][:], hidden[:]) + nn.b2[o])
	}
	return out
}

// Think evaluates inputs and maps the result to an action.
func (nn *Network) Think(inputs [NumInputs]float64) Action {
	return Decide(nn.Evaluate(inputs))
}

// Decide picks the action with the largest output. Ties go to the lowest index.
func Decide(outputs [NumOutputs]float64) Action {
	return Action(floats.MaxIdx(outputs[:]))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
