package neural

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalGenome encodes g as indented JSON.
func MarshalGenome(g Genome) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGenome decodes and validates a JSON genome.
func UnmarshalGenome(data []byte) (Genome, error) {
	var g Genome
	if err := json.Unmarshal(data, &g); err != nil {
		return Genome{}, fmt.Errorf("%w: %v", ErrInvalidGenome, err)
	}
	if err := g.Validate(); err != nil {
		return Genome{}, err
	}
	return g, nil
}

// LoadGenome reads a genome from a JSON file.
func LoadGenome(path string) (Genome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Genome{}, fmt.Errorf("reading genome: %w", err)
	}
	g, err := UnmarshalGenome(data)
	if err != nil {
		return Genome{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return g, nil
}

// SaveGenome writes g to a JSON file.
func SaveGenome(path string, g Genome) error {
	data, err := MarshalGenome(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing genome: %w", err)
	}
	return nil
}
