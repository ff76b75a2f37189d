// Package evolution breeds new genomes from a scored population: fitness
// proportional selection, uniform crossover and per-gene mutation.
package evolution

import (
	"errors"

	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/rng"
)

// ErrNoBaseGenome is returned when there is nothing to breed from.
var ErrNoBaseGenome = errors.New("no base genome: dead pool is empty and no fallback was supplied")

// Scored is a genome with the fitness it earned.
type Scored struct {
	Genome  neural.Genome
	Fitness float64
}

// MatingPool is a shuffled population with normalized selection weights.
type MatingPool struct {
	items []rng.Item[neural.Genome]
}

// NewMatingPool shuffles a copy of population and assigns each member
// weight fitness/total. When total fitness is zero every member gets 1/n.
// Negative fitness counts as zero.
func NewMatingPool(population []Scored, shuffle *rng.Source) MatingPool {
	members := make([]Scored, len(population))
	copy(members, population)
	rng.Shuffle(shuffle, members)

	var total float64
	for _, m := range members {
		if m.Fitness > 0 {
			total += m.Fitness
		}
	}

	items := make([]rng.Item[neural.Genome], len(members))
	for i, m := range members {
		w := 1.0 / float64(len(members))
		if total > 0 {
			w = max(m.Fitness, 0) / total
		}
		items[i] = rng.Item[neural.Genome]{Value: m.Genome, Weight: w}
	}
	return MatingPool{items: items}
}

// Len returns the number of members.
func (p MatingPool) Len() int {
	return len(p.items)
}

// Weights returns the selection weight of each member in pool order.
func (p MatingPool) Weights() []float64 {
	w := make([]float64, len(p.items))
	for i, it := range p.items {
		w[i] = it.Weight
	}
	return w
}

// Select draws one genome. The same genome may be drawn on consecutive calls.
func (p MatingPool) Select(pick *rng.Source) (neural.Genome, error) {
	g, ok := rng.Weighted(pick, p.items)
	if !ok {
		return neural.Genome{}, ErrNoBaseGenome
	}
	return g.Clone(), nil
}

// Select builds a pool from population and draws one genome from it.
func Select(population []Scored, shuffle, pick *rng.Source) (neural.Genome, error) {
	return NewMatingPool(population, shuffle).Select(pick)
}
