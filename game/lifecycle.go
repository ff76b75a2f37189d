package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/dinoevo/evolution"
	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/rng"
	"github.com/pthm-cable/dinoevo/telemetry"
)

// ctxCheckFrames is how often a running generation polls for cancellation.
const ctxCheckFrames = 1024

// ResetEvolution discards all training progress and starts generation 1 from
// base, or from a fresh default genome when base is nil.
func (g *Game) ResetEvolution(base *neural.Genome) error {
	if base != nil {
		if err := base.Validate(); err != nil {
			return fmt.Errorf("base genome: %w", err)
		}
		g.baseGenome = base.Clone()
	} else {
		g.baseGenome = neural.NewDefault(rng.Derive(g.seed, "init")).Serialize()
	}

	g.bestGenome = nil
	g.bestScore = 0
	g.dead = nil
	g.generation = 0
	return g.newGeneration()
}

// endGeneration records the finished generation and rolls over.
func (g *Game) endGeneration() error {
	summary := telemetry.GenerationSummary{
		Generation: g.generation,
		Score:      g.score,
		Frames:     g.frame,
		Deaths:     len(g.dead),
		Level:      g.level,
	}

	if g.score > g.bestScore && len(g.dead) > 0 {
		best := g.dead[len(g.dead)-1].Genome()
		g.bestScore = g.score
		g.bestGenome = &best
		summary.NewBest = true
	}
	summary.BestScore = g.bestScore

	fitness := make([]float64, len(g.dead))
	for i, d := range g.dead {
		fitness[i] = d.Fitness
	}
	telemetry.ComputeFitnessStats(fitness).Apply(&summary)

	g.lastSummary = summary
	slog.Debug("generation complete", "summary", summary)
	if g.observer != nil {
		g.observer.OnGeneration(summary)
	}
	return g.newGeneration()
}

// newGeneration breeds the dead pool (or mutates the fallback genome when it
// is empty), resets the world and spawns the new population.
func (g *Game) newGeneration() error {
	scored := make([]evolution.Scored, len(g.dead))
	for i, d := range g.dead {
		scored[i] = evolution.Scored{Genome: d.Genome(), Fitness: d.Fitness}
	}

	base := g.bestGenome
	if base == nil {
		base = &g.baseGenome
	}
	genomes, err := g.breeder.NextGenomes(scored, base, g.cfg.AI.PopulationSize)
	if err != nil {
		return fmt.Errorf("generation %d: %w", g.generation+1, err)
	}

	g.clearActors()
	g.dead = nil
	g.frame = 0
	g.score = 0
	g.level = 0
	g.settings.Restore(g.baseline)

	if err := g.spawnPopulation(genomes); err != nil {
		return fmt.Errorf("generation %d: %w", g.generation+1, err)
	}
	g.generation++
	return nil
}

// RunGeneration steps until the current generation ends and returns its summary.
// It stops early with ctx.Err() if ctx is cancelled; the world is left at a
// frame boundary and can be resumed.
func (g *Game) RunGeneration(ctx context.Context) (telemetry.GenerationSummary, error) {
	start := g.generation
	for g.generation == start {
		if g.frame%ctxCheckFrames == 0 {
			if err := ctx.Err(); err != nil {
				return g.lastSummary, err
			}
		}
		if err := g.Step(); err != nil {
			return g.lastSummary, err
		}
	}
	return g.lastSummary, nil
}

// Run plays n generations, or until ctx is cancelled when n <= 0.
func (g *Game) Run(ctx context.Context, n int) ([]telemetry.GenerationSummary, error) {
	var summaries []telemetry.GenerationSummary
	for i := 0; n <= 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		s, err := g.RunGeneration(ctx)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
