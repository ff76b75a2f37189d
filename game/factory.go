package game

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dinoevo/components"
	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/rng"
	"github.com/pthm-cable/dinoevo/systems"
)

// spawnActor creates an obstacle or cloud at the right edge of the canvas.
func (g *Game) spawnActor(kind components.Kind, visual components.Visual, y, speedMod float64) ecs.Entity {
	body := components.BodyFor(&g.cfg.Sprites, visual)
	pos := components.Position{X: g.cfg.Canvas.Width, Y: y}
	motion := components.Motion{SpeedMod: speedMod}
	hazard := components.Hazard{Kind: kind, Visual: visual}
	spawn := components.Spawn{Seq: g.nextSeq}
	g.nextSeq++
	return g.actorMapper.NewEntity(&pos, &body, &motion, &hazard, &spawn)
}

// spawnCactus places a random cactus variant on the ground.
func (g *Game) spawnCactus() {
	visual, _ := rng.Choice(g.streams.World, components.CactusVisuals)
	h := components.BodyFor(&g.cfg.Sprites, visual).H
	y := g.cfg.Canvas.Height - h - g.cfg.Cactus.GroundOffset
	g.spawnActor(components.KindCactus, visual, y, 1)
}

// spawnBird places a bird at a random altitude above the ground line.
func (g *Game) spawnBird() {
	src := g.streams.World
	speedMod := g.speedMod()
	altitude := float64(src.Int(g.cfg.Bird.AltitudeMin, g.cfg.Bird.AltitudeMax))
	y := g.cfg.Canvas.Height - g.cfg.Sprites.Bird.H - altitude
	g.spawnActor(components.KindBird, components.VisualBirdWingsUp, y, speedMod)
}

// spawnCloud places a cloud at a random height.
func (g *Game) spawnCloud() {
	src := g.streams.World
	speedMod := g.speedMod()
	y := float64(src.Int(g.cfg.Cloud.YMin, g.cfg.Cloud.YMax))
	g.spawnActor(components.KindCloud, components.VisualCloud, y, speedMod)
}

func (g *Game) speedMod() float64 {
	return float64(g.streams.World.Int(g.cfg.SpeedMod.Min, g.cfg.SpeedMod.Max)) / 10
}

// spawnPopulation replaces the running agents with one agent per genome.
func (g *Game) spawnPopulation(genomes []neural.Genome) error {
	g.dinos = g.dinos[:0]
	for _, genome := range genomes {
		brain, err := neural.Deserialize(genome)
		if err != nil {
			return err
		}
		g.dinos = append(g.dinos, newDino(g.nextID, brain))
		g.nextID++
	}
	return nil
}

// clearActors removes every obstacle and cloud.
func (g *Game) clearActors() {
	var toRemove []ecs.Entity
	query := g.actorFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
}

// actors returns snapshots of the actors whose kind passes keep, in spawn order.
func (g *Game) actors(keep func(components.Kind) bool) []ObstacleView {
	var views []ObstacleView
	query := g.actorFilter.Query()
	for query.Next() {
		pos, body, hazard, spawn := query.Get()
		if !keep(hazard.Kind) {
			continue
		}
		views = append(views, ObstacleView{
			Kind:   hazard.Kind,
			Visual: hazard.Visual,
			Box:    systems.Box{X: pos.X, Y: pos.Y, W: body.W, H: body.H},
			Seq:    spawn.Seq,
		})
	}
	slices.SortFunc(views, func(a, b ObstacleView) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
	return views
}

// nearest returns the earliest spawned live actor of each hazard kind.
func (g *Game) nearest() (cactus, bird *systems.Box) {
	var cactusSeq, birdSeq uint64
	query := g.actorFilter.Query()
	for query.Next() {
		pos, body, hazard, spawn := query.Get()
		if !hazard.Kind.Hazardous() {
			continue
		}
		box := systems.Box{X: pos.X, Y: pos.Y, W: body.W, H: body.H}
		switch hazard.Kind {
		case components.KindCactus:
			if cactus == nil || spawn.Seq < cactusSeq {
				cactus, cactusSeq = &box, spawn.Seq
			}
		case components.KindBird:
			if bird == nil || spawn.Seq < birdSeq {
				bird, birdSeq = &box, spawn.Seq
			}
		}
	}
	return cactus, bird
}
