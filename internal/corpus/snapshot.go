package corpus

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/kaitou/internal/vector"
)

// Snapshot is an immutable (Store, Flat index) pair built from a single
// ingestion batch. The two are only ever published together, so a query
// can never observe a store whose length disagrees with the index row
// count. A new snapshot replaces the old one by reference; nothing is
// mutated in place.
type Snapshot struct {
	Store *Store
	Index *vector.Flat

	// ID identifies the build that produced this snapshot.
	ID      string
	BuiltAt time.Time
}

// NewSnapshot pairs a store with the index built from the same batch.
// Refuses mismatched lengths.
func NewSnapshot(store *Store, index *vector.Flat) (*Snapshot, error) {
	if store.Len() != index.Size() {
		return nil, fmt.Errorf("corpus/index misalignment: %d records, %d vectors", store.Len(), index.Size())
	}
	return &Snapshot{
		Store:   store,
		Index:   index,
		ID:      uuid.New().String(),
		BuiltAt: time.Now(),
	}, nil
}
