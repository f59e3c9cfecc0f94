// Package storage persists the ingested QA corpus so a restart can
// restore the snapshot without re-embedding every question.
package storage

import (
	"context"

	"github.com/hyperjump/kaitou/internal/models"
)

// Storage persists QA records in corpus order. ReplaceAll swaps the whole
// corpus in one transaction; there are no partial updates, mirroring the
// engine's whole-corpus rebuild semantics.
type Storage interface {
	ReplaceAll(ctx context.Context, records []models.QARecord) error
	LoadAll(ctx context.Context) ([]models.QARecord, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}
