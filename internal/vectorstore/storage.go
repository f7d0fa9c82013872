// Package vectorstore indexes clustered chunks for similarity lookups in the
// explorer.
package vectorstore

import "docexplore/internal/domain"

// SearchResult is a chunk and its similarity to the query.
type SearchResult struct {
	Chunk domain.Chunk
	Score float64
}

// Filter reports whether a chunk may appear in results.
type Filter func(domain.Chunk) bool

// Storage holds chunk vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk) error
	Search(vector []float64, topK int, keep Filter) ([]SearchResult, error)
	Clear() error
}
