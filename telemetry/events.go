// Package telemetry records deaths and per-generation statistics and writes
// them to an experiment output directory.
package telemetry

import "log/slog"

// DeathEvent records one agent colliding.
type DeathEvent struct {
	Generation int     `csv:"generation"`
	Frame      int     `csv:"frame"`
	AgentID    int     `csv:"agent"`
	Fitness    float64 `csv:"fitness"`
	Level      int     `csv:"level"`
}

// GenerationSummary describes one finished generation.
type GenerationSummary struct {
	Generation int  `csv:"generation"`
	Score      int  `csv:"score"`
	BestScore  int  `csv:"best_score"`
	Frames     int  `csv:"frames"`
	Deaths     int  `csv:"deaths"`
	Level      int  `csv:"level"`
	NewBest    bool `csv:"new_best"`

	MeanFitness float64 `csv:"fitness_mean"`
	StdFitness  float64 `csv:"fitness_std"`
	P50Fitness  float64 `csv:"fitness_p50"`
	P90Fitness  float64 `csv:"fitness_p90"`
	MaxFitness  float64 `csv:"fitness_max"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("score", s.Score),
		slog.Int("best_score", s.BestScore),
		slog.Int("frames", s.Frames),
		slog.Int("deaths", s.Deaths),
		slog.Int("level", s.Level),
		slog.Bool("new_best", s.NewBest),
		slog.Float64("fitness_mean", s.MeanFitness),
		slog.Float64("fitness_std", s.StdFitness),
		slog.Float64("fitness_p50", s.P50Fitness),
		slog.Float64("fitness_p90", s.P90Fitness),
		slog.Float64("fitness_max", s.MaxFitness),
	)
}
