package provider

import (
	"context"
	"math"
	"sync/atomic"
)

// MockEmbedder is a deterministic embedder for tests. The same text always
// yields the same unit-length vector, so nearest-neighbor orderings are
// reproducible across runs.
type MockEmbedder struct {
	dimensions int
	calls      atomic.Int64
}

// NewMockEmbedder returns an embedder producing deterministic embeddings
// of the given dimension.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 8
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed returns a deterministic embedding derived from the text hash.
func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls.Add(1)
	h := hashString(text)
	emb := make([]float32, e.dimensions)
	for i := 0; i < e.dimensions; i++ {
		emb[i] = float32(math.Sin(float64(h*uint64(i+1)))*0.1 + 0.01)
	}
	var sum float64
	for _, v := range emb {
		sum += float64(v * v)
	}
	if sum > 0 {
		norm := 1.0 / math.Sqrt(sum)
		for i := range emb {
			emb[i] *= float32(norm)
		}
	}
	return emb, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Calls returns how many times Embed was invoked.
func (e *MockEmbedder) Calls() int {
	return int(e.calls.Load())
}

// hashString is FNV-1a over the text, used to seed deterministic embeddings.
func hashString(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

// MockCompleter is a scripted completion provider for tests. It returns the
// configured responses in order, repeating the last one when exhausted, and
// records every prompt it receives.
type MockCompleter struct {
	Responses []string
	Err       error

	SystemPrompts []string
	UserPrompts   []string
}

// Complete returns the next scripted response.
func (c *MockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	c.SystemPrompts = append(c.SystemPrompts, system)
	c.UserPrompts = append(c.UserPrompts, user)
	if c.Err != nil {
		return "", c.Err
	}
	if len(c.Responses) == 0 {
		return "", nil
	}
	n := len(c.SystemPrompts) - 1
	if n >= len(c.Responses) {
		n = len(c.Responses) - 1
	}
	return c.Responses[n], nil
}

// Calls returns how many times Complete was invoked.
func (c *MockCompleter) Calls() int {
	return len(c.SystemPrompts)
}
