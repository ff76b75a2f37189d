package storage

import (
	"context"
	"errors"
	"sync"
)

var errNotInitialized = errors.New("store is not initialized")

// MemoryStore keeps records in process memory. It is lost on exit.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	best        map[string]BestGenomeRecord
	generations map[string][]GenerationRecord
}

// NewMemoryStore returns an empty store; call Init before use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Init resets the store to empty.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.best = make(map[string]BestGenomeRecord)
	s.generations = make(map[string][]GenerationRecord)
	return nil
}

func (s *MemoryStore) SaveBestGenome(_ context.Context, rec BestGenomeRecord) error {
	if err := rec.Genome.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	rec.Genome = rec.Genome.Clone()
	s.best[rec.RunID] = rec
	return nil
}

func (s *MemoryStore) GetBestGenome(_ context.Context, runID string) (BestGenomeRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return BestGenomeRecord{}, false, errNotInitialized
	}
	rec, ok := s.best[runID]
	if !ok {
		return BestGenomeRecord{}, false, nil
	}
	rec.Genome = rec.Genome.Clone()
	return rec, true, nil
}

func (s *MemoryStore) AppendGeneration(_ context.Context, rec GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.generations[rec.RunID] = append(s.generations[rec.RunID], rec)
	return nil
}

func (s *MemoryStore) ListGenerations(_ context.Context, runID string) ([]GenerationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	return append([]GenerationRecord(nil), s.generations[runID]...), nil
}
