// Package storage persists training results across runs.
package storage

import (
	"context"

	"github.com/google/uuid"
)

// Store defines persistence operations for a training run.
type Store interface {
	Init(ctx context.Context) error
	// SaveBestGenome replaces the best genome of rec.RunID.
	SaveBestGenome(ctx context.Context, rec BestGenomeRecord) error
	// GetBestGenome reports found == false when the run has no best genome.
	GetBestGenome(ctx context.Context, runID string) (BestGenomeRecord, bool, error)
	AppendGeneration(ctx context.Context, rec GenerationRecord) error
	// ListGenerations returns a run's generations in order.
	ListGenerations(ctx context.Context, runID string) ([]GenerationRecord, error)
}

// NewRunID returns a fresh identifier for a training run.
func NewRunID() string {
	return uuid.NewString()
}
