// Package embedding attaches vectors to chunks using a domain.Embedder.
package embedding

import (
	"fmt"

	"docexplore/internal/domain"
)

// VectorizeAll fits the embedder on the chunk texts and returns copies of the
// chunks with their embeddings set. The embedder is prepared exactly once.
func VectorizeAll(e domain.Embedder, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if len(chunks) == 0 {
		return nil, domain.ErrNoChunks
	}
	corpus := make([]string, len(chunks))
	for i, c := range chunks {
		corpus[i] = c.Text
	}
	if err := e.Prepare(corpus); err != nil {
		return nil, fmt.Errorf("prepare %s: %w", e.Name(), err)
	}
	out := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		vec, err := e.Embed(c.Text)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", c.ID, err)
		}
		c.Embedding = vec
		out[i] = c
	}
	return out, nil
}
