// Package provider defines the external model capabilities the engine consumes:
// text embedding and chat completion. Both are abstract interfaces so the engine
// can be tested with deterministic stubs and is not bound to any vendor.
package provider

import (
	"context"
	"fmt"
)

// EmbeddingProvider maps a text string to a fixed-dimension vector.
// Embeddings from different providers (or models) live in different spaces;
// query embeddings must come from the same provider used at index build time.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// CompletionProvider returns a free-text completion for a system/user
// instruction pair. Output length and determinism are adapter configuration,
// not engine policy.
type CompletionProvider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Error wraps a provider failure with the operation that produced it.
// The engine never retries provider failures; retry and backoff policy
// belongs to the adapter or its caller.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
