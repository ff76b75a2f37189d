package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/dinoevo/config"
	"github.com/pthm-cable/dinoevo/neural"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir             string
	generationsFile *os.File
	deathsFile      *os.File

	// Track if headers have been written
	generationsHeaderWritten bool
	deathsHeaderWritten      bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	om.generationsFile = f

	f, err = os.Create(filepath.Join(dir, "deaths.csv"))
	if err != nil {
		om.generationsFile.Close()
		return nil, fmt.Errorf("creating deaths.csv: %w", err)
	}
	om.deathsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGenerations appends summaries to generations.csv.
func (om *OutputManager) WriteGenerations(records []GenerationSummary) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := writeCSV(records, om.generationsFile, &om.generationsHeaderWritten); err != nil {
		return fmt.Errorf("writing generations: %w", err)
	}
	return nil
}

// WriteDeaths appends death events to deaths.csv.
func (om *OutputManager) WriteDeaths(records []DeathEvent) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := writeCSV(records, om.deathsFile, &om.deathsHeaderWritten); err != nil {
		return fmt.Errorf("writing deaths: %w", err)
	}
	return nil
}

// writeCSV writes the header only on the first call per file.
func writeCSV(records any, f *os.File, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// WriteBestGenome saves the best genome as best-dino.json.
func (om *OutputManager) WriteBestGenome(g neural.Genome) error {
	if om == nil {
		return nil
	}
	return neural.SaveGenome(filepath.Join(om.dir, "best-dino.json"), g)
}

// WritePlot renders the score history to scores.png.
func (om *OutputManager) WritePlot(history []GenerationSummary) error {
	if om == nil {
		return nil
	}
	return PlotScores(history, filepath.Join(om.dir, "scores.png"))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.generationsFile, om.deathsFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
