package engine

import "errors"

// Error kinds surfaced to callers. Transports map these to status codes.
var (
	// ErrNoData means no corpus has been successfully ingested yet.
	ErrNoData = errors.New("no corpus loaded")
	// ErrInvalidArgument covers malformed caller input (empty question, k < 1).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmbedding wraps an embedding provider failure. Not retried here;
	// retry policy belongs to the provider adapter.
	ErrEmbedding = errors.New("embedding failed")
	// ErrCompletion wraps a completion provider failure.
	ErrCompletion = errors.New("completion failed")
)
