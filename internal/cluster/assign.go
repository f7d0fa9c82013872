package cluster

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"docexplore/internal/domain"
	"docexplore/internal/logger"
)

// Clusterer writes a cluster id onto every chunk. With K <= 0 the count is
// chosen by the Selector.
type Clusterer struct {
	K        int
	Seed     int64
	Restarts int
	MaxIter  int
	Selector *Selector
	Logger   *log.Logger
}

// Assign clusters the chunks with the configured K.
func (c *Clusterer) Assign(ctx context.Context, chunks []domain.Chunk) ([]domain.Chunk, error) {
	return c.AssignK(ctx, chunks, c.K)
}

// AssignK clusters the chunks into k groups and returns labelled copies.
func (c *Clusterer) AssignK(ctx context.Context, chunks []domain.Chunk, k int) ([]domain.Chunk, error) {
	l := logger.OrDiscard(c.Logger)
	n := len(chunks)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInsufficientData, n)
	}
	vectors, err := vectorsOf(chunks)
	if err != nil {
		return nil, err
	}

	if k <= 0 {
		sel := c.Selector
		if sel == nil {
			sel = &Selector{MinClusters: 3, MaxClusters: 50, Seed: c.Seed, Restarts: c.Restarts, MaxIter: c.MaxIter, Logger: c.Logger}
		}
		if k, err = sel.Select(ctx, vectors); err != nil {
			return nil, err
		}
	}
	if k > n {
		reduced := max(2, n/3)
		l.Warn("requested clusters exceed chunks, reducing", "requested", k, "chunks", n, "using", reduced)
		k = reduced
	}

	res, err := KMeans{K: k, Seed: c.Seed, Restarts: c.Restarts, MaxIter: c.MaxIter}.Fit(vectors)
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}
	out := make([]domain.Chunk, n)
	for i, ch := range chunks {
		out[i] = ch.WithCluster(res.Labels[i])
	}
	l.Info("chunks clustered", "chunks", n, "clusters", k, "inertia", res.Inertia)
	return out, nil
}

func vectorsOf(chunks []domain.Chunk) ([][]float64, error) {
	vectors := make([][]float64, len(chunks))
	dim := -1
	for i, ch := range chunks {
		if !ch.HasEmbedding() {
			return nil, fmt.Errorf("%w: chunk %d", domain.ErrNoVectors, ch.ID)
		}
		if dim >= 0 && len(ch.Embedding) != dim {
			return nil, fmt.Errorf("%w: chunk %d has %d, want %d", domain.ErrDimensionMismatch, ch.ID, len(ch.Embedding), dim)
		}
		dim = len(ch.Embedding)
		vectors[i] = ch.Embedding
	}
	return vectors, nil
}
