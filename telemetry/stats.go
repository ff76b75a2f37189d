package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FitnessStats summarizes a generation's fitness values.
type FitnessStats struct {
	Mean, Std, P50, P90, Max float64
}

// ComputeFitnessStats calculates mean, sample standard deviation, median,
// 90th percentile and maximum. Empty input yields zeros; a single value has
// zero spread.
func ComputeFitnessStats(values []float64) FitnessStats {
	n := len(values)
	if n == 0 {
		return FitnessStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := FitnessStats{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:  floats.Max(sorted),
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// Apply copies the stats into a summary.
func (s FitnessStats) Apply(sum *GenerationSummary) {
	sum.MeanFitness = s.Mean
	sum.StdFitness = s.Std
	sum.P50Fitness = s.P50
	sum.P90Fitness = s.P90
	sum.MaxFitness = s.Max
}
