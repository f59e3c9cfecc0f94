package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/kaitou/internal/models"
)

// Answer embeds the question, retrieves the k nearest solved questions,
// and asks the completion model for the answer option grounded on them.
// k is clamped to the corpus size; asking for more neighbors than exist
// returns all of them rather than failing.
func (e *Engine) Answer(ctx context.Context, question string, k int) (*models.QueryResult, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNoData
	}
	if question == "" {
		return nil, fmt.Errorf("%w: question cannot be empty", ErrInvalidArgument)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidArgument, k)
	}
	if k > snap.Store.Len() {
		k = snap.Store.Len()
	}

	queryEmbedding, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	hits, err := snap.Index.Search(queryEmbedding, k)
	if err != nil {
		return nil, err
	}

	supporting := make([]models.RetrievedContext, 0, len(hits))
	for _, hit := range hits {
		rec, err := snap.Store.Get(hit.Position)
		if err != nil {
			return nil, err
		}
		supporting = append(supporting, models.RetrievedContext{
			Question: rec.Question,
			Answer:   rec.Answer,
			Distance: hit.Distance,
		})
	}

	p := e.prompts.Build(question, supporting)
	raw, err := e.completer.Complete(ctx, p.System, p.User)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	res := e.extractor.Extract(raw)
	if e.logger != nil {
		e.logger.Debug("question answered",
			zap.Int("k", k),
			zap.String("predicted", res.Label),
			zap.Bool("fallback", res.Fallback),
		)
	}
	return &models.QueryResult{
		PredictedAnswer:     res.Label,
		Confidence:          defaultConfidence,
		Fallback:            res.Fallback,
		SupportingQuestions: supporting,
	}, nil
}
