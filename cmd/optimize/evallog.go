package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

var (
	errOutputRequired = errors.New("-output is required")
	errNoEvaluations  = errors.New("no evaluation completed")
)

// EvalRecord is one row of optimize_log.csv. Values are the clamped
// parameters the populations were actually trained with.
type EvalRecord struct {
	Eval              int     `csv:"eval"`
	Fitness           float64 `csv:"fitness"`
	MutationRate      float64 `csv:"mutation_rate"`
	MutationDeviation float64 `csv:"mutation_deviation"`
	Scores            string  `csv:"seed_scores"` // best score per seed, space separated
}

// NewEvalRecord builds a row from an evaluation. values follows NewParamVector order.
func NewEvalRecord(eval int, fitness float64, values []float64, scores []int) EvalRecord {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.Itoa(s)
	}
	return EvalRecord{
		Eval:              eval,
		Fitness:           fitness,
		MutationRate:      values[0],
		MutationDeviation: values[1],
		Scores:            strings.Join(parts, " "),
	}
}

// Values returns the parameters in NewParamVector order.
func (r EvalRecord) Values() []float64 {
	return []float64{r.MutationRate, r.MutationDeviation}
}

// LogValue implements slog.LogValuer for structured logging.
func (r EvalRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("eval", r.Eval),
		slog.Float64("mean_score", -r.Fitness),
		slog.Float64("mutation_rate", r.MutationRate),
		slog.Float64("mutation_deviation", r.MutationDeviation),
		slog.String("seed_scores", r.Scores),
	)
}

// EvalLog appends evaluation rows to a CSV file, writing the header once.
type EvalLog struct {
	f             *os.File
	headerWritten bool
}

// NewEvalLog creates path and its directory.
func NewEvalLog(path string) (*EvalLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &EvalLog{f: f}, nil
}

// Append writes one row.
func (l *EvalLog) Append(rec EvalRecord) error {
	rows := []EvalRecord{rec}
	if !l.headerWritten {
		l.headerWritten = true
		return gocsv.Marshal(rows, l.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, l.f)
}

// Close closes the file.
func (l *EvalLog) Close() error {
	return l.f.Close()
}
