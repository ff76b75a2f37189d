package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pthm-cable/dinoevo/config"
	"github.com/pthm-cable/dinoevo/game"
	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/storage"
	"github.com/pthm-cable/dinoevo/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.ini (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	generations := flag.Int("generations", 0, "Stop after N generations (0 = until interrupted)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, plot, config snapshot and best genome")
	storeKind := flag.String("store", "", "Persistence backend: memory or sqlite (empty = use config)")
	storePath := flag.String("store-path", "", "SQLite database path (empty = use config)")
	baseGenome := flag.String("base-genome", "", "Genome JSON to start the first generation from")
	logFormat := flag.String("log-format", "json", "Log format: json or text")

	flag.Parse()

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *storeKind != "" {
		cfg.Storage.Backend = *storeKind
	}
	if *storePath != "" {
		cfg.Storage.Path = *storePath
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, rngSeed, *generations, *outputDir, *baseGenome); err != nil {
		slog.Error("training failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, seed int64, generations int, outputDir, basePath string) error {
	var base *neural.Genome
	if basePath != "" {
		g, err := neural.LoadGenome(basePath)
		if err != nil {
			return err
		}
		base = &g
	}

	out, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		return err
	}

	store, err := storage.NewStore(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return err
	}
	if err := store.Init(ctx); err != nil {
		return err
	}
	defer storage.CloseIfSupported(store)

	collector := telemetry.NewCollector(cfg.Telemetry.GenerationWindow)
	g, err := game.New(cfg, game.Options{
		Seed:       seed,
		BaseGenome: base,
		Observer:   game.Observers{collector, deathLog{}},
	})
	if err != nil {
		return err
	}

	// Store writes outlive an interrupt so the last generation is kept.
	storeCtx := context.WithoutCancel(ctx)

	runID := storage.NewRunID()
	slog.Info("starting training",
		"run_id", runID,
		"seed", seed,
		"population", cfg.AI.PopulationSize,
		"generations", generations,
		"store", cfg.Storage.Backend,
	)

	var totalFrames int
	for generations <= 0 || g.Generation() <= generations {
		summary, err := g.RunGeneration(ctx)
		if errors.Is(err, context.Canceled) {
			slog.Info("interrupted", "generation", g.Generation(), "frame", g.Frame())
			break
		}
		if err != nil {
			return err
		}
		totalFrames += summary.Frames

		if err := store.AppendGeneration(storeCtx, storage.GenerationRecord{
			VersionedRecord: storage.CurrentVersion(),
			RunID:           runID,
			Summary:         summary,
		}); err != nil {
			return err
		}
		if summary.NewBest {
			if err := persistBest(storeCtx, g, store, out, runID, summary.Generation); err != nil {
				return err
			}
		}

		if collector.ShouldFlush() {
			if err := flush(collector, out); err != nil {
				return err
			}
			slog.Info("generation", "summary", summary, "frames_total", humanize.Comma(int64(totalFrames)))
		}
	}

	if err := flush(collector, out); err != nil {
		return err
	}
	if err := out.WritePlot(collector.History()); err != nil {
		return err
	}

	slog.Info("training finished",
		"run_id", runID,
		"generations", humanize.Comma(int64(len(collector.History()))),
		"frames", humanize.Comma(int64(totalFrames)),
		"best_score", g.BestScore(),
	)
	return nil
}

func persistBest(ctx context.Context, g *game.Game, store storage.Store, out *telemetry.OutputManager, runID string, generation int) error {
	best, ok := g.BestGenome()
	if !ok {
		return nil
	}
	if err := store.SaveBestGenome(ctx, storage.BestGenomeRecord{
		VersionedRecord: storage.CurrentVersion(),
		RunID:           runID,
		Generation:      generation,
		Score:           g.BestScore(),
		Genome:          best,
	}); err != nil {
		return err
	}
	return out.WriteBestGenome(best)
}

func flush(c *telemetry.Collector, out *telemetry.OutputManager) error {
	gens, deaths := c.Flush()
	if err := out.WriteGenerations(gens); err != nil {
		return err
	}
	return out.WriteDeaths(deaths)
}

// deathLog reports every death at debug level.
type deathLog struct{}

func (deathLog) OnDeath(e telemetry.DeathEvent) {
	slog.Debug("agent died", "generation", e.Generation, "frame", e.Frame, "agent", e.AgentID, "fitness", e.Fitness)
}

func (deathLog) OnGeneration(telemetry.GenerationSummary) {}
