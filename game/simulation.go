package game

import (
	"math"

	"github.com/pthm-cable/dinoevo/systems"
	"github.com/pthm-cable/dinoevo/telemetry"
)

// Perception is the environment part of an agent's input: the nearest
// cactus and bird, normalized by canvas size, and the normalized level.
// Missing hazards read as zero.
type Perception struct {
	CactusX, CactusY float64
	BirdX, BirdY     float64
	Level            float64
}

func (g *Game) perceive(cactus, bird *systems.Box) Perception {
	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height
	p := Perception{Level: float64(g.level) / g.cfg.Difficulty.LevelNorm}
	if cactus != nil {
		p.CactusX, p.CactusY = cactus.X/w, cactus.Y/h
	}
	if bird != nil {
		p.BirdX, p.BirdY = bird.X/w, bird.Y/h
	}
	return p
}

// Step advances the world exactly one frame. When the last agent dies the
// generation rolls over within the same call.
func (g *Game) Step() error {
	g.frame++
	g.groundX = math.Mod(g.groundX-g.settings.BgSpeed, g.cfg.Canvas.GroundWidth)

	g.updateActors()

	if len(g.dinos) > 0 {
		g.updateDinos()
	}

	if len(g.dinos) > 0 {
		g.updateScore()
		return nil
	}
	return g.endGeneration()
}

// updateActors moves, evicts and spawns obstacles and clouds.
func (g *Game) updateActors() {
	birdsActive := g.difficulty.BirdsActive(g.level)

	g.scroll.Update(&g.settings, birdsActive)
	g.evict.Update(g.world)

	rates := g.settings.SpawnRates
	if g.frame%max(1, rates.Cacti) == 0 && g.streams.World.Bool() {
		g.spawnCactus()
	}
	if birdsActive && g.frame%max(1, rates.Birds) == 0 && g.streams.World.Bool() {
		g.spawnBird()
	}
	if g.frame%max(1, rates.Clouds) == 0 {
		g.spawnCloud()
	}
}

// updateDinos runs think, act, physics and collision for every agent, last
// to first. Agents that hit the nearest cactus or bird join the dead pool.
func (g *Game) updateDinos() {
	cactus, bird := g.nearest()
	perception := g.perceive(cactus, bird)

	var targets []systems.Box
	if cactus != nil {
		targets = append(targets, *cactus)
	}
	if bird != nil {
		targets = append(targets, *bird)
	}

	for i := len(g.dinos) - 1; i >= 0; i-- {
		d := g.dinos[i]
		d.Think(perception, g.settings.Lift)
		d.NextFrame(&g.settings)

		if !systems.HitsAny(d.Box(g.cfg), targets...) {
			continue
		}

		d.alive = false
		d.Fitness = float64(g.score)
		g.dead = append(g.dead, d)
		g.dinos = append(g.dinos[:i], g.dinos[i+1:]...)

		if g.observer != nil {
			g.observer.OnDeath(telemetry.DeathEvent{
				Generation: g.generation,
				Frame:      g.frame,
				AgentID:    d.ID,
				Fitness:    d.Fitness,
				Level:      g.level,
			})
		}
	}
}

// updateScore awards a point on the score modulus and ramps difficulty on level-up.
func (g *Game) updateScore() {
	if g.frame%max(1, g.settings.ScoreIncreaseRate) != 0 {
		return
	}
	g.score++
	level := g.difficulty.Level(g.score)
	if level != g.level {
		g.level = level
		g.settings = systems.Ramp(level, g.settings, g.difficulty)
	}
}
