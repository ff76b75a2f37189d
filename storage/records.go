package storage

import (
	"github.com/pthm-cable/dinoevo/neural"
	"github.com/pthm-cable/dinoevo/telemetry"
)

// VersionedRecord tags every persisted payload with its format versions.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// CurrentVersion returns the versions written by this build.
func CurrentVersion() VersionedRecord {
	return VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

// BestGenomeRecord is the best genome of a run and the score it reached.
type BestGenomeRecord struct {
	VersionedRecord
	RunID      string        `json:"run_id"`
	Generation int           `json:"generation"`
	Score      int           `json:"score"`
	Genome     neural.Genome `json:"genome"`
}

// GenerationRecord is one finished generation of a run.
type GenerationRecord struct {
	VersionedRecord
	RunID   string                      `json:"run_id"`
	Summary telemetry.GenerationSummary `json:"summary"`
}
