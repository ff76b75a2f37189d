// Package rng provides seeded random sources and the sampling helpers used by
// the simulation and the evolution engine.
package rng

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// Source is a seeded random stream. It is not safe for concurrent use.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded with seed. Identical seeds yield identical streams.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Derive returns an independent Source keyed by name. The same (seed, name)
// pair always yields the same stream.
func Derive(seed int64, name string) *Source {
	h := fnv.New64a()
	h.Write([]byte(name))
	return New(seed ^ int64(h.Sum64()))
}

// Rand exposes the underlying generator.
func (s *Source) Rand() *rand.Rand {
	return s.r
}

// Float returns a uniform value in [0, 1).
func (s *Source) Float() float64 {
	return s.r.Float64()
}

// Range returns a uniform value in [min, max).
func (s *Source) Range(min, max float64) float64 {
	return min + s.r.Float64()*(max-min)
}

// Int returns a uniform integer in [min, max], both ends inclusive, as
// floor(Float()*(max-min+1))+min. If max < min the bounds are swapped.
func (s *Source) Int(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + int(math.Floor(s.r.Float64()*float64(max-min+1)))
}

// Bool returns true with probability one half.
func (s *Source) Bool() bool {
	return s.Int(0, 1) == 1
}

// Shuffle permutes xs in place (Fisher-Yates).
func Shuffle[T any](s *Source, xs []T) {
	s.r.Shuffle(len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}
