package game

import (
	"context"
	"errors"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dinoevo/components"
	"github.com/pthm-cable/dinoevo/config"
	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/rng"
	"github.com/pthm-cable/dinoevo/telemetry"
)

// recorder keeps every event it observes.
type recorder struct {
	deaths      []telemetry.DeathEvent
	generations []telemetry.GenerationSummary
}

func (r *recorder) OnDeath(e telemetry.DeathEvent) {
	r.deaths = append(r.deaths, e)
}

func (r *recorder) OnGeneration(s telemetry.GenerationSummary) {
	r.generations = append(r.generations, s)
}

// placeAt moves an actor to x.
func placeAt(g *Game, e ecs.Entity, x float64) {
	ecs.NewMap[components.Position](g.world).Get(e).X = x
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.AI.PopulationSize = 20
	cfg.AI.MutationRate = 0
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, seed int64, obs Observer) *Game {
	t.Helper()
	g, err := New(cfg, Options{Seed: seed, Observer: obs})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewStartsFirstGeneration(t *testing.T) {
	g := newTestGame(t, testConfig(t), 1, nil)

	if g.Generation() != 1 {
		t.Errorf("generation = %d, want 1", g.Generation())
	}
	if g.Alive() != 20 {
		t.Errorf("alive = %d, want 20", g.Alive())
	}
	if g.Frame() != 0 || g.Score() != 0 || g.Level() != 0 {
		t.Errorf("frame/score/level = %d/%d/%d, want zeros", g.Frame(), g.Score(), g.Level())
	}
	if _, ok := g.BestGenome(); ok {
		t.Error("best genome set before any generation ended")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.AI.MutationRate = 2
	if _, err := New(cfg, Options{}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}

func TestNewRejectsInvalidBaseGenome(t *testing.T) {
	bad := neural.NewGenome()
	bad.Connections = bad.Connections[:3]
	_, err := New(testConfig(t), Options{BaseGenome: &bad})
	if !errors.Is(err, neural.ErrInvalidGenome) {
		t.Errorf("error = %v, want ErrInvalidGenome", err)
	}
}

func TestRateZeroPopulationCopiesBase(t *testing.T) {
	base := neural.NewDefault(rng.New(77)).Serialize()
	g, err := New(testConfig(t), Options{Seed: 3, BaseGenome: &base})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, d := range g.dinos {
		if !d.Genome().Equal(base) {
			t.Fatalf("dino %d differs from base genome", d.ID)
		}
	}
}

// runFrames steps the game and returns every death it observed.
func runFrames(t *testing.T, seed int64, frames int) (*Game, *recorder) {
	t.Helper()
	rec := &recorder{}
	g := newTestGame(t, testConfig(t), seed, rec)
	for i := 0; i < frames; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	return g, rec
}

func TestDeterministicReplay(t *testing.T) {
	const seed, frames = 2024, 2000

	g1, r1 := runFrames(t, seed, frames)
	g2, r2 := runFrames(t, seed, frames)

	if g1.Score() != g2.Score() || g1.Frame() != g2.Frame() || g1.Generation() != g2.Generation() {
		t.Fatalf("state diverged: score %d/%d frame %d/%d generation %d/%d",
			g1.Score(), g2.Score(), g1.Frame(), g2.Frame(), g1.Generation(), g2.Generation())
	}
	if g1.BestScore() != g2.BestScore() {
		t.Errorf("best score diverged: %d vs %d", g1.BestScore(), g2.BestScore())
	}

	if len(r1.deaths) != len(r2.deaths) {
		t.Fatalf("death count diverged: %d vs %d", len(r1.deaths), len(r2.deaths))
	}
	for i := range r1.deaths {
		if r1.deaths[i] != r2.deaths[i] {
			t.Fatalf("death %d diverged: %+v vs %+v", i, r1.deaths[i], r2.deaths[i])
		}
	}

	b1, ok1 := g1.BestGenome()
	b2, ok2 := g2.BestGenome()
	if ok1 != ok2 || !b1.Equal(b2) {
		t.Error("best genome diverged")
	}

	o1, o2 := g1.Obstacles(), g2.Obstacles()
	if len(o1) != len(o2) {
		t.Fatalf("obstacle count diverged: %d vs %d", len(o1), len(o2))
	}
	for i := range o1 {
		if o1[i] != o2[i] {
			t.Fatalf("obstacle %d diverged: %+v vs %+v", i, o1[i], o2[i])
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	_, r1 := runFrames(t, 1, 3000)
	_, r2 := runFrames(t, 2, 3000)

	same := len(r1.deaths) == len(r2.deaths)
	if same {
		for i := range r1.deaths {
			if r1.deaths[i] != r2.deaths[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical runs")
	}
}

func TestCollisionKillsWithScoreAsFitness(t *testing.T) {
	rec := &recorder{}
	cfg := testConfig(t)
	g := newTestGame(t, cfg, 5, rec)
	g.score = 7

	// After one frame of scrolling the cactus sits exactly on the dinos.
	y := cfg.Canvas.Height - cfg.Sprites.Cactus.H - cfg.Cactus.GroundOffset
	e := g.spawnActor(components.KindCactus, components.VisualCactus, y, 1)
	placeAt(g, e, cfg.Dino.X+g.settings.BgSpeed)

	if err := g.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if len(rec.deaths) != 20 {
		t.Fatalf("deaths = %d, want 20", len(rec.deaths))
	}
	for _, d := range rec.deaths {
		if d.Fitness != 7 {
			t.Errorf("agent %d fitness = %v, want 7", d.AgentID, d.Fitness)
		}
	}
	// Agents are processed last to first.
	if rec.deaths[0].AgentID != 19 || rec.deaths[19].AgentID != 0 {
		t.Errorf("death order %d..%d, want 19..0", rec.deaths[0].AgentID, rec.deaths[19].AgentID)
	}

	if len(rec.generations) != 1 {
		t.Fatalf("generation summaries = %d, want 1", len(rec.generations))
	}
	s := rec.generations[0]
	if s.Score != 7 || s.BestScore != 7 || !s.NewBest || s.Deaths != 20 {
		t.Errorf("summary = %+v", s)
	}

	if g.Generation() != 2 {
		t.Errorf("generation = %d, want 2 after extinction", g.Generation())
	}
	if g.BestScore() != 7 {
		t.Errorf("best score = %d, want 7", g.BestScore())
	}
	if g.Score() != 0 || g.Frame() != 0 || g.Alive() != 20 || g.Dead() != 0 {
		t.Errorf("rollover did not reset: score=%d frame=%d alive=%d dead=%d",
			g.Score(), g.Frame(), g.Alive(), g.Dead())
	}
	if len(g.Obstacles()) != 0 {
		t.Error("obstacles survived rollover")
	}
}

func TestOnlyNearestHazardCollides(t *testing.T) {
	rec := &recorder{}
	cfg := testConfig(t)
	g := newTestGame(t, cfg, 6, rec)

	y := cfg.Canvas.Height - cfg.Sprites.Cactus.H - cfg.Cactus.GroundOffset
	// Older cactus far away, newer cactus on top of the agents.
	placeAt(g, g.spawnActor(components.KindCactus, components.VisualCactus, y, 1), 400)
	placeAt(g, g.spawnActor(components.KindCactus, components.VisualCactus, y, 1), cfg.Dino.X+g.settings.BgSpeed)

	if err := g.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(rec.deaths) != 0 {
		t.Errorf("%d agents died on a hazard that is not the nearest", len(rec.deaths))
	}
}

func TestPerceptionUsesEarliestSpawn(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGame(t, cfg, 7, nil)

	placeAt(g, g.spawnActor(components.KindCactus, components.VisualCactusTriple, 100, 1), 300)
	placeAt(g, g.spawnActor(components.KindCactus, components.VisualCactus, 113, 1), 60)
	g.spawnActor(components.KindCloud, components.VisualCloud, 30, 1)

	cactus, bird := g.nearest()
	if bird != nil {
		t.Error("found a bird where none was spawned")
	}
	if cactus == nil || cactus.X != 300 {
		t.Fatalf("nearest cactus = %+v, want the one at x=300", cactus)
	}

	g.level = 10
	p := g.perceive(cactus, bird)
	want := Perception{CactusX: 300 / cfg.Canvas.Width, CactusY: 100 / cfg.Canvas.Height, Level: 0.5}
	if p != want {
		t.Errorf("perception = %+v, want %+v", p, want)
	}
}

func TestSettingsRestoredOnRollover(t *testing.T) {
	g := newTestGame(t, testConfig(t), 8, nil)
	g.settings.BgSpeed = 40
	g.settings.SpawnRates.Cacti = 3

	g.dinos = g.dinos[:0]
	if err := g.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if g.Settings() != g.baseline {
		t.Errorf("settings %+v not restored to baseline %+v", g.Settings(), g.baseline)
	}
}

func TestScoreAndLevel(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGame(t, cfg, 9, nil)
	g.score = 499
	g.frame = cfg.Settings.ScoreIncreaseRate - 1

	g.updateScore() // frame not advanced, no point
	if g.score != 499 {
		t.Fatalf("score changed off the modulus")
	}
	g.frame++
	g.updateScore()
	if g.score != 500 || g.level != 5 {
		t.Errorf("score/level = %d/%d, want 500/5", g.score, g.level)
	}
	if g.settings.BgSpeed != g.baseline.BgSpeed+1 {
		t.Errorf("level 5 did not ramp scroll speed: %v", g.settings.BgSpeed)
	}
}

func TestResetEvolution(t *testing.T) {
	g, _ := runFrames(t, 10, 1500)
	if g.Generation() == 1 {
		t.Skip("no generation finished in 1500 frames")
	}

	base := neural.NewDefault(rng.New(1)).Serialize()
	if err := g.ResetEvolution(&base); err != nil {
		t.Fatalf("ResetEvolution: %v", err)
	}
	if g.Generation() != 1 || g.BestScore() != 0 || g.Dead() != 0 {
		t.Errorf("reset left generation=%d best=%d dead=%d", g.Generation(), g.BestScore(), g.Dead())
	}
	if _, ok := g.BestGenome(); ok {
		t.Error("best genome survived reset")
	}
	for _, d := range g.dinos {
		if !d.Genome().Equal(base) {
			t.Fatal("population not rebuilt from the new base")
		}
	}
}

func TestRunGenerations(t *testing.T) {
	rec := &recorder{}
	g := newTestGame(t, testConfig(t), 11, rec)

	summaries, err := g.Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}
	for i, s := range summaries {
		if s.Generation != i+1 {
			t.Errorf("summary %d is generation %d", i, s.Generation)
		}
		if s.Deaths != 20 {
			t.Errorf("generation %d had %d deaths, want 20", s.Generation, s.Deaths)
		}
	}
	if g.Generation() != 4 {
		t.Errorf("generation = %d, want 4", g.Generation())
	}
	if len(rec.generations) != 3 {
		t.Errorf("observer saw %d generations, want 3", len(rec.generations))
	}
	prev := 0
	for _, s := range rec.generations {
		if s.BestScore < prev {
			t.Errorf("best score decreased: %d -> %d", prev, s.BestScore)
		}
		prev = s.BestScore
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g := newTestGame(t, testConfig(t), 12, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summaries, err := g.Run(ctx, 5)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(summaries) != 0 {
		t.Errorf("ran %d generations after cancel", len(summaries))
	}
	if g.Generation() != 1 || g.Frame() != 0 {
		t.Error("cancelled run advanced the world")
	}
}

func BenchmarkStep(b *testing.B) {
	cfg := config.Default()
	g, err := New(cfg, Options{Seed: 1})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step()
	}
}

func TestObserversFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	obs := Observers{a, b}
	obs.OnDeath(telemetry.DeathEvent{AgentID: 3})
	obs.OnGeneration(telemetry.GenerationSummary{Generation: 1})
	for i, r := range []*recorder{a, b} {
		if len(r.deaths) != 1 || len(r.generations) != 1 {
			t.Errorf("observer %d got %d deaths, %d generations", i, len(r.deaths), len(r.generations))
		}
	}
}
