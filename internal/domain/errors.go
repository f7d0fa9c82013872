package domain

import "errors"

// Input-absent conditions. Any of these aborts a run.
var (
	ErrNoChunks          = errors.New("no chunks to process")
	ErrNoVectors         = errors.New("no embeddings found")
	ErrInsufficientData  = errors.New("insufficient data: at least 2 chunks are required for clustering")
	ErrEmptyArtifact     = errors.New("no clustered chunks to aggregate")
	ErrUnclustered       = errors.New("chunk has no cluster assignment")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
