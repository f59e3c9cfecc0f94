package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/kaitou/internal/corpus"
	"github.com/hyperjump/kaitou/internal/models"
	"github.com/hyperjump/kaitou/internal/vector"
)

// Ingest embeds every question in the batch, builds a fresh store and
// index from it, and publishes them as one snapshot. On any failure the
// previous snapshot stays in place, so a half-built corpus is never
// visible to queries. Returns the published snapshot so callers can
// persist it.
func (e *Engine) Ingest(ctx context.Context, records []models.QARecord) (*corpus.Snapshot, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", ErrInvalidArgument)
	}

	// Embedding calls are independent per record; run them in parallel but
	// assemble results by position, since row i of the index must be record i.
	embeddings := make([][]float32, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.embedConcurrency)
	for i := range records {
		i := i
		g.Go(func() error {
			emb, err := e.embedder.Embed(gctx, records[i].Question)
			if err != nil {
				return fmt.Errorf("%w: record %d: %w", ErrEmbedding, i, err)
			}
			embeddings[i] = emb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index, err := vector.NewFlat(e.embedder.Dimensions())
	if err != nil {
		return nil, err
	}
	if err := index.Build(embeddings); err != nil {
		return nil, err
	}
	snap, err := corpus.NewSnapshot(corpus.NewStore(records), index)
	if err != nil {
		return nil, err
	}
	e.snapshot.Store(snap)
	if e.logger != nil {
		e.logger.Info("corpus ingested",
			zap.String("snapshot_id", snap.ID),
			zap.Int("records", snap.Store.Len()),
			zap.Int("dimensions", index.Dimensions()),
		)
	}
	return snap, nil
}
