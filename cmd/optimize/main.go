// Package main tunes the mutation rate and deviation with CMA-ES: every
// candidate trains fresh populations on fixed seeds and is scored by the
// mean best score they reach.
package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/dinoevo/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML or INI file (empty = use defaults)")
	generations := flag.Int("generations", 20, "Generations trained per evaluation")
	maxFrames := flag.Int("max-frames", 200000, "Frame cap per seed and evaluation")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = library default)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(*configPath, *outputDir, *generations, *maxFrames, *seeds, *maxEvals, *population); err != nil {
		slog.Error("optimization failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, generations, maxFrames, seeds, maxEvals, population int) error {
	if outputDir == "" {
		return errOutputRequired
	}
	baseCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	evalLog, err := NewEvalLog(filepath.Join(outputDir, "optimize_log.csv"))
	if err != nil {
		return err
	}
	defer evalLog.Close()

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, generations, maxFrames, evalSeeds(seeds), baseCfg)

	best := EvalRecord{Fitness: math.Inf(1)}
	count := 0
	started := time.Now()
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			values := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(values)
			count++

			rec := NewEvalRecord(count, fitness, values, evaluator.LastScores())
			if fitness < best.Fitness {
				best = rec
			}
			if err := evalLog.Append(rec); err != nil {
				slog.Warn("eval log write failed", "error", err)
			}
			slog.Info("evaluation", "eval", count, "of", maxEvals, "record", rec,
				"best_mean_score", -best.Fitness,
				"elapsed", time.Since(started).Round(time.Second).String())
			return fitness
		},
	}

	slog.Info("starting CMA-ES",
		"params", params.Dim(),
		"seeds", seeds,
		"generations", generations,
		"max_evals", maxEvals,
		"frame_cap", humanize.Comma(int64(maxFrames)),
	)

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: population}
	if _, err := optimize.Minimize(problem, initX, &optimize.Settings{FuncEvaluations: maxEvals}, method); err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if count == 0 {
		return errNoEvaluations
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, best.Values())
	configOut := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOut); err != nil {
		return err
	}

	slog.Info("optimization complete",
		"evaluations", count,
		"duration", time.Since(started).Round(time.Second).String(),
		"best", best,
		"config", configOut,
	)
	return nil
}

// evalSeeds returns n fixed, well-spread seeds.
func evalSeeds(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i*1000 + 42)
	}
	return out
}
