package evolution

import (
	"fmt"

	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/rng"
)

// Crossover builds a child whose every gene is copied verbatim from mom or
// dad, chosen by an independent coin flip per neuron and per connection.
func Crossover(mom, dad neural.Genome, src *rng.Source) (neural.Genome, error) {
	if len(mom.Neurons) != len(dad.Neurons) || len(mom.Connections) != len(dad.Connections) {
		return neural.Genome{}, fmt.Errorf("crossover: %w: parents have %d/%d and %d/%d genes",
			neural.ErrInvalidGenome, len(mom.Neurons), len(mom.Connections), len(dad.Neurons), len(dad.Connections))
	}

	child := neural.Genome{
		Neurons:     make([]neural.Neuron, len(mom.Neurons)),
		Connections: make([]neural.Connection, len(mom.Connections)),
	}
	for i := range child.Neurons {
		if src.Bool() {
			child.Neurons[i] = mom.Neurons[i]
		} else {
			child.Neurons[i] = dad.Neurons[i]
		}
	}
	for i := range child.Connections {
		if src.Bool() {
			child.Connections[i] = mom.Connections[i]
		} else {
			child.Connections[i] = dad.Connections[i]
		}
	}
	return child, nil
}

// MutableFields selects which gene values mutation may touch.
type MutableFields uint8

const (
	MutateBias MutableFields = 1 << iota
	MutateWeight

	MutateBoth = MutateBias | MutateWeight
)

// ParseMutableFields parses "bias", "weight" or "bias+weight".
func ParseMutableFields(s string) (MutableFields, error) {
	switch s {
	case "bias":
		return MutateBias, nil
	case "weight":
		return MutateWeight, nil
	case "bias+weight":
		return MutateBoth, nil
	}
	return 0, fmt.Errorf("unknown mutable fields %q", s)
}

func (f MutableFields) String() string {
	switch f {
	case MutateBias:
		return "bias"
	case MutateWeight:
		return "weight"
	case MutateBoth:
		return "bias+weight"
	}
	return fmt.Sprintf("MutableFields(%d)", uint8(f))
}

// Mutator perturbs genes. Each enabled gene mutates with probability Rate by
// a uniform offset in [-Deviation, Deviation).
type Mutator struct {
	Rate      float64
	Deviation float64
	Fields    MutableFields
}

// Mutate returns a mutated copy of g. gate decides whether each gene mutates;
// dev draws the offsets. g is left untouched.
func (m Mutator) Mutate(g neural.Genome, gate, dev *rng.Source) neural.Genome {
	out := g.Clone()
	if m.Fields&MutateBias != 0 {
		for i := range out.Neurons {
			if gate.Float() < m.Rate {
				out.Neurons[i].Bias += dev.Range(-m.Deviation, m.Deviation)
			}
		}
	}
	if m.Fields&MutateWeight != 0 {
		for i := range out.Connections {
			if gate.Float() < m.Rate {
				out.Connections[i].Weight += dev.Range(-m.Deviation, m.Deviation)
			}
		}
	}
	return out
}
