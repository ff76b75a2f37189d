package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Format versions written into every record. Decoding rejects any other value.
const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// ErrVersionMismatch is returned when a stored record was written by another format version.
var ErrVersionMismatch = errors.New("record version mismatch")

// EncodeBestGenome validates the genome and serializes the record as JSON.
func EncodeBestGenome(rec BestGenomeRecord) ([]byte, error) {
	if err := rec.Genome.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

// DecodeBestGenome parses a stored record and rejects malformed genomes.
func DecodeBestGenome(data []byte) (BestGenomeRecord, error) {
	var rec BestGenomeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return BestGenomeRecord{}, err
	}
	if err := checkVersion(rec.VersionedRecord); err != nil {
		return BestGenomeRecord{}, err
	}
	if err := rec.Genome.Validate(); err != nil {
		return BestGenomeRecord{}, fmt.Errorf("run %s: %w", rec.RunID, err)
	}
	return rec, nil
}

// EncodeGeneration serializes a generation record as JSON.
func EncodeGeneration(rec GenerationRecord) ([]byte, error) {
	return json.Marshal(rec)
}

// DecodeGeneration parses a stored generation record.
func DecodeGeneration(data []byte) (GenerationRecord, error) {
	var rec GenerationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return GenerationRecord{}, err
	}
	if err := checkVersion(rec.VersionedRecord); err != nil {
		return GenerationRecord{}, err
	}
	return rec, nil
}

func checkVersion(v VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
