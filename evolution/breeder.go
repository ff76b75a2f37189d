package evolution

import (
	"fmt"

	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/rng"
)

// Breeder produces the genomes of the next generation.
type Breeder struct {
	Mutator Mutator
	streams *rng.Streams
}

// NewBreeder returns a breeder drawing from the given streams.
func NewBreeder(m Mutator, streams *rng.Streams) *Breeder {
	return &Breeder{Mutator: m, streams: streams}
}

// BreedNextGeneration builds one mating pool from dead and returns size
// children, each the crossover of two independently selected parents.
// Children are not mutated.
func (b *Breeder) BreedNextGeneration(dead []Scored, size int) ([]neural.Genome, error) {
	if len(dead) == 0 {
		return nil, ErrNoBaseGenome
	}
	pool := NewMatingPool(dead, b.streams.Shuffle)

	children := make([]neural.Genome, 0, size)
	for i := 0; i < size; i++ {
		mom, err := pool.Select(b.streams.Select)
		if err != nil {
			return nil, err
		}
		dad, err := pool.Select(b.streams.Select)
		if err != nil {
			return nil, err
		}
		child, err := Crossover(mom, dad, b.streams.Crossover)
		if err != nil {
			return nil, fmt.Errorf("breeding slot %d: %w", i, err)
		}
		children = append(children, child)
	}
	return children, nil
}

// NextGenomes returns size independently mutated genomes for a new generation.
// With a non-empty dead pool they are bred children; otherwise every slot is
// a mutated copy of base. A nil base with an empty dead pool is an error.
func (b *Breeder) NextGenomes(dead []Scored, base *neural.Genome, size int) ([]neural.Genome, error) {
	var parents []neural.Genome
	if len(dead) > 0 {
		bred, err := b.BreedNextGeneration(dead, size)
		if err != nil {
			return nil, err
		}
		parents = bred
	} else {
		if base == nil {
			return nil, ErrNoBaseGenome
		}
		if err := base.Validate(); err != nil {
			return nil, fmt.Errorf("base genome: %w", err)
		}
		parents = make([]neural.Genome, size)
		for i := range parents {
			parents[i] = *base
		}
	}

	out := make([]neural.Genome, len(parents))
	for i, p := range parents {
		out[i] = b.Mutator.Mutate(p, b.streams.Gate, b.streams.Deviation)
	}
	return out, nil
}
