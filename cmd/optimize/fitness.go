package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/dinoevo/config"
	"github.com/pthm-cable/dinoevo/game"
)

// FitnessEvaluator trains headless populations and scores a parameter vector.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	maxFrames   int // per seed, across all generations
	seeds       []int64
	baseConfig  *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastScores  []int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations, maxFrames int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		maxFrames:   maxFrames,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastScores returns the best score per seed from the most recent evaluation.
func (fe *FitnessEvaluator) LastScores() []int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return append([]int(nil), fe.lastScores...)
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the negated mean best score over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	scores := make([]int, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			scores[idx] = fe.runTraining(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, s := range scores {
		total += float64(s)
	}
	fitness := -total / float64(len(scores))

	fe.mu.Lock()
	fe.lastScores = scores
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.mu.Unlock()

	return fitness
}

// runTraining returns the best score reached within the generation and frame caps.
// Invalid configurations score zero.
func (fe *FitnessEvaluator) runTraining(cfg *config.Config, seed int64) int {
	g, err := game.New(cfg, game.Options{Seed: seed})
	if err != nil {
		return 0
	}
	for frames := 0; g.Generation() <= fe.generations && frames < fe.maxFrames; frames++ {
		if err := g.Step(); err != nil {
			break
		}
	}
	// A generation cut off by the frame cap still counts.
	return max(g.BestScore(), g.Score())
}
