// Package engine implements the retrieval-augmented question answering
// pipeline: embed the question, find the nearest solved questions, prompt
// the completion model with them, and parse the constrained answer out.
package engine

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hyperjump/kaitou/internal/answer"
	"github.com/hyperjump/kaitou/internal/corpus"
	"github.com/hyperjump/kaitou/internal/prompt"
	"github.com/hyperjump/kaitou/internal/provider"
)

// defaultConfidence is attached to every result. The reference system
// reports a constant rather than a score derived from retrieval distances;
// the Fallback flag on the result is the signal callers should use to
// detect ambiguous answers.
const defaultConfidence = 0.95

// Engine answers questions against an ingested QA corpus. The corpus and
// its vector index live in an immutable snapshot swapped atomically on
// re-ingestion, so the query path reads without locking.
type Engine struct {
	embedder  provider.EmbeddingProvider
	completer provider.CompletionProvider
	prompts   *prompt.Builder
	extractor *answer.Extractor

	snapshot atomic.Pointer[corpus.Snapshot]

	embedConcurrency int
	logger           *zap.Logger // optional; when set, logs ingest and query events
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithEmbedConcurrency bounds how many embedding calls run in parallel
// during ingestion.
func WithEmbedConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.embedConcurrency = n
		}
	}
}

// New creates an engine in the Uninitialized state. It serves no queries
// until Ingest or Restore succeeds.
func New(embedder provider.EmbeddingProvider, completer provider.CompletionProvider, prompts *prompt.Builder, extractor *answer.Extractor, opts ...Option) *Engine {
	e := &Engine{
		embedder:         embedder,
		completer:        completer,
		prompts:          prompts,
		extractor:        extractor,
		embedConcurrency: 8,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ready reports whether a corpus has been ingested.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Size returns the number of corpus records, 0 when uninitialized.
func (e *Engine) Size() int {
	snap := e.snapshot.Load()
	if snap == nil {
		return 0
	}
	return snap.Store.Len()
}

// Snapshot returns the current snapshot, nil when uninitialized.
func (e *Engine) Snapshot() *corpus.Snapshot {
	return e.snapshot.Load()
}

// Restore installs a snapshot rebuilt from persisted state, skipping
// re-embedding. The snapshot's dimension must match the embedder's,
// since distances across embedding spaces are meaningless.
func (e *Engine) Restore(snap *corpus.Snapshot) error {
	if snap.Index.Dimensions() != e.embedder.Dimensions() {
		return fmt.Errorf("snapshot dimension %d does not match embedder dimension %d",
			snap.Index.Dimensions(), e.embedder.Dimensions())
	}
	e.snapshot.Store(snap)
	if e.logger != nil {
		e.logger.Info("snapshot restored",
			zap.String("snapshot_id", snap.ID),
			zap.Int("records", snap.Store.Len()),
		)
	}
	return nil
}
