// Package neural provides the fixed-topology feedforward networks that steer agents.
package neural

import (
	"errors"
	"fmt"
	"math"
)

// Network dimensions. Every genome in a population shares this topology, so
// crossover and mutation can operate on genes by position.
const (
	NumInputs  = 7 // cactus x/y, bird x/y, level, airborne, ducking
	NumHidden  = 5
	NumOutputs = 3 // jump, duck, run

	NumNeurons     = NumInputs + NumHidden + NumOutputs
	NumConnections = NumInputs*NumHidden + NumHidden*NumOutputs
)

// Neuron index offsets per layer.
const (
	firstHidden = NumInputs
	firstOutput = NumInputs + NumHidden
	// hidden->output connections start after all input->hidden ones
	firstOutputConn = NumInputs * NumHidden
)

// ErrInvalidGenome reports a genome that does not match the fixed topology.
var ErrInvalidGenome = errors.New("invalid genome")

// Neuron is one node gene. Only Bias is evolved; Activation and State are
// carried through serialization untouched.
type Neuron struct {
	Bias       float64 `json:"bias"`
	Activation float64 `json:"activation,omitempty"`
	State      float64 `json:"state,omitempty"`
}

// Connection is one edge gene.
type Connection struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

// Genome is the serializable description of a network.
//
// Neurons are ordered inputs, hidden, outputs. Connections are ordered
// input->hidden (input-major) followed by hidden->output (hidden-major).
type Genome struct {
	Neurons     []Neuron     `json:"neurons"`
	Connections []Connection `json:"connections"`
}

// NewGenome returns a genome with the fixed topology and all values zero.
func NewGenome() Genome {
	g := Genome{
		Neurons:     make([]Neuron, NumNeurons),
		Connections: make([]Connection, NumConnections),
	}
	for c := range g.Connections {
		g.Connections[c].From, g.Connections[c].To = Endpoints(c)
	}
	return g
}

// Endpoints returns the neuron indices connection c links.
func Endpoints(c int) (from, to int) {
	if c < firstOutputConn {
		return c / NumHidden, firstHidden + c%NumHidden
	}
	c -= firstOutputConn
	return firstHidden + c/NumOutputs, firstOutput + c%NumOutputs
}

// Validate checks gene counts, connection endpoints and that every value is finite.
// It never pads or truncates.
func (g Genome) Validate() error {
	if len(g.Neurons) != NumNeurons {
		return fmt.Errorf("%w: %d neurons, want %d", ErrInvalidGenome, len(g.Neurons), NumNeurons)
	}
	if len(g.Connections) != NumConnections {
		return fmt.Errorf("%w: %d connections, want %d", ErrInvalidGenome, len(g.Connections), NumConnections)
	}
	for i, n := range g.Neurons {
		if !finite(n.Bias) {
			return fmt.Errorf("%w: neuron %d bias %v", ErrInvalidGenome, i, n.Bias)
		}
	}
	for i, c := range g.Connections {
		from, to := Endpoints(i)
		if c.From != from || c.To != to {
			return fmt.Errorf("%w: connection %d links %d->%d, want %d->%d", ErrInvalidGenome, i, c.From, c.To, from, to)
		}
		if !finite(c.Weight) {
			return fmt.Errorf("%w: connection %d weight %v", ErrInvalidGenome, i, c.Weight)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (g Genome) Clone() Genome {
	cp := Genome{
		Neurons:     make([]Neuron, len(g.Neurons)),
		Connections: make([]Connection, len(g.Connections)),
	}
	copy(cp.Neurons, g.Neurons)
	copy(cp.Connections, g.Connections)
	return cp
}

// Equal reports whether g and o hold bit-identical genes.
func (g Genome) Equal(o Genome) bool {
	if len(g.Neurons) != len(o.Neurons) || len(g.Connections) != len(o.Connections) {
		return false
	}
	for i := range g.Neurons {
		a, b := g.Neurons[i], o.Neurons[i]
		if !sameBits(a.Bias, b.Bias) || !sameBits(a.Activation, b.Activation) || !sameBits(a.State, b.State) {
			return false
		}
	}
	for i := range g.Connections {
		a, b := g.Connections[i], o.Connections[i]
		if a.From != b.From || a.To != b.To || !sameBits(a.Weight, b.Weight) {
			return false
		}
	}
	return true
}

func sameBits(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
