// Package game runs the headless runner world and the generational training loop.
package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dinoevo/components"
	"github.com/pthm-cable/dinoevo/config"
	"github.com/pthm-cable/dinoevo/evolution"
	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/rng"
	"github.com/pthm-cable/dinoevo/systems"
	"github.com/pthm-cable/dinoevo/telemetry"
)

// Options configures a new Game.
type Options struct {
	Seed       int64
	BaseGenome *neural.Genome // starting genome; a fresh default is used when nil
	Observer   Observer       // optional
}

// Game holds the complete world and training state.
type Game struct {
	cfg     *config.Config
	seed    int64
	streams *rng.Streams
	breeder *evolution.Breeder

	difficulty systems.Difficulty
	baseline   systems.Settings
	settings   systems.Settings

	// Obstacles and clouds live in the ECS world.
	world       *ecs.World
	actorMapper *ecs.Map5[
		components.Position,
		components.Body,
		components.Motion,
		components.Hazard,
		components.Spawn,
	]
	actorFilter *ecs.Filter4[
		components.Position,
		components.Body,
		components.Hazard,
		components.Spawn,
	]
	scroll  *systems.ScrollSystem
	evict   *systems.EvictionSystem
	nextSeq uint64

	// Agents are few and ordered, so they stay in a slice.
	dinos  []*Dino
	dead   []*Dino
	nextID int

	// Generation state
	frame   int
	score   int
	level   int
	groundX float64

	// Training state, survives rollover
	generation int
	bestScore  int
	bestGenome *neural.Genome
	baseGenome neural.Genome

	observer    Observer
	lastSummary telemetry.GenerationSummary
}

// New creates a game and spawns its first generation.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fields, err := evolution.ParseMutableFields(cfg.AI.MutableFields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	world := ecs.NewWorld()
	streams := rng.NewStreams(opts.Seed)

	g := &Game{
		cfg:     cfg,
		seed:    opts.Seed,
		streams: streams,
		breeder: evolution.NewBreeder(evolution.Mutator{
			Rate:      cfg.AI.MutationRate,
			Deviation: cfg.AI.MutationDeviation,
			Fields:    fields,
		}, streams),
		difficulty: systems.DifficultyFromConfig(cfg.Difficulty),
		baseline:   systems.SettingsFromConfig(cfg.Settings),
		world:      world,
		actorMapper: ecs.NewMap5[
			components.Position,
			components.Body,
			components.Motion,
			components.Hazard,
			components.Spawn,
		](world),
		actorFilter: ecs.NewFilter4[
			components.Position,
			components.Body,
			components.Hazard,
			components.Spawn,
		](world),
		scroll:   systems.NewScrollSystem(world, cfg.Bird.WingsRate),
		evict:    systems.NewEvictionSystem(world),
		observer: opts.Observer,
	}
	g.settings = g.baseline.Snapshot()

	if err := g.ResetEvolution(opts.BaseGenome); err != nil {
		return nil, err
	}
	return g, nil
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Frame returns the frame counter of the current generation.
func (g *Game) Frame() int { return g.frame }

// Score returns the current generation's score.
func (g *Game) Score() int { return g.score }

// Level returns the current difficulty level.
func (g *Game) Level() int { return g.level }

// Generation returns the generation counter. The first generation is 1.
func (g *Game) Generation() int { return g.generation }

// BestScore returns the best score over all generations.
func (g *Game) BestScore() int { return g.bestScore }

// BestGenome returns a copy of the genome that set the best score.
func (g *Game) BestGenome() (neural.Genome, bool) {
	if g.bestGenome == nil {
		return neural.Genome{}, false
	}
	return g.bestGenome.Clone(), true
}

// Alive returns the number of running agents.
func (g *Game) Alive() int { return len(g.dinos) }

// Dead returns the number of agents in the dead pool.
func (g *Game) Dead() int { return len(g.dead) }

// GroundX returns the scroll offset of the ground texture.
func (g *Game) GroundX() float64 { return g.groundX }

// Settings returns the current, possibly ramped, settings.
func (g *Game) Settings() systems.Settings { return g.settings }

// DinoView is a read-only snapshot of one agent for renderers.
type DinoView struct {
	ID   int
	Box  systems.Box
	Pose Pose
}

// Dinos returns snapshots of the running agents in processing order.
func (g *Game) Dinos() []DinoView {
	views := make([]DinoView, len(g.dinos))
	for i, d := range g.dinos {
		views[i] = DinoView{ID: d.ID, Box: d.Box(g.cfg), Pose: d.pose}
	}
	return views
}

// ObstacleView is a read-only snapshot of one obstacle or cloud.
type ObstacleView struct {
	Kind   components.Kind
	Visual components.Visual
	Box    systems.Box
	Seq    uint64
}

// Obstacles returns snapshots of every actor in spawn order.
func (g *Game) Obstacles() []ObstacleView {
	return g.actors(func(components.Kind) bool { return true })
}
