// Package vector provides a flat in-memory vector index with exact
// nearest-neighbor search by squared Euclidean distance.
package vector

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotReady is returned by Search before the index has been built
// with at least one vector.
var ErrNotReady = errors.New("vector index not built")

// Hit is a single nearest-neighbor result. Position is the row of the
// matching vector in the build batch, which is also the position of the
// corresponding record in the corpus store.
type Hit struct {
	Position int
	Distance float32
}

// Flat is an exact brute-force index over a fixed batch of vectors.
// Build replaces the whole contents; there is no incremental insert.
// A built index is read-only, so concurrent Search calls need no locking;
// callers must not Build and Search the same index concurrently.
type Flat struct {
	dimensions int
	vectors    [][]float32
}

// NewFlat creates an empty index expecting vectors of the given dimension.
func NewFlat(dimensions int) (*Flat, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &Flat{dimensions: dimensions}, nil
}

// Build replaces the index contents with the given embedding rows.
// Row i of the batch becomes Position i in search results.
func (f *Flat) Build(embeddings [][]float32) error {
	vectors := make([][]float32, len(embeddings))
	for i, emb := range embeddings {
		if len(emb) != f.dimensions {
			return fmt.Errorf("vector %d dimension mismatch: got %d, expected %d", i, len(emb), f.dimensions)
		}
		vec := make([]float32, f.dimensions)
		copy(vec, emb)
		vectors[i] = vec
	}
	f.vectors = vectors
	return nil
}

// Search returns the k nearest vectors to query, ordered ascending by
// squared Euclidean distance, ties broken by insertion order. The result
// length is min(k, Size). Searching an unbuilt or empty index returns
// ErrNotReady.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(f.vectors) == 0 {
		return nil, ErrNotReady
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(query) != f.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), f.dimensions)
	}
	hits := make([]Hit, len(f.vectors))
	for i, vec := range f.vectors {
		hits[i] = Hit{Position: i, Distance: SquaredL2(query, vec)}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Size returns the number of indexed vectors.
func (f *Flat) Size() int {
	return len(f.vectors)
}

// Dimensions returns the vector dimension the index was created with.
func (f *Flat) Dimensions() int {
	return f.dimensions
}

// SquaredL2 returns the squared Euclidean distance between two vectors
// of equal length.
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
