// Package corpus holds the ingested QA records and pairs them with the
// vector index they were embedded into.
package corpus

import (
	"errors"
	"fmt"

	"github.com/hyperjump/kaitou/internal/models"
)

// ErrOutOfRange is returned by Get for a position outside [0, Len).
// Positions come from vector index hits, so seeing this error means the
// store and index were built from different batches, which the Snapshot
// constructor is supposed to make impossible.
var ErrOutOfRange = errors.New("corpus position out of range")

// Store is an ordered, immutable collection of QA records. Record i is
// aligned with embedding row i of the index built from the same batch.
type Store struct {
	records []models.QARecord
}

// NewStore copies records into an immutable store.
func NewStore(records []models.QARecord) *Store {
	recs := make([]models.QARecord, len(records))
	copy(recs, records)
	return &Store{records: recs}
}

// Get returns the record at position.
func (s *Store) Get(position int) (models.QARecord, error) {
	if position < 0 || position >= len(s.records) {
		return models.QARecord{}, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, position, len(s.records))
	}
	return s.records[position], nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns a copy of all records in position order.
func (s *Store) Records() []models.QARecord {
	recs := make([]models.QARecord, len(s.records))
	copy(recs, s.records)
	return recs
}
