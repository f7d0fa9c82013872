package cluster

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"docexplore/internal/logger"
)

const DefaultMaxCandidates = 10

// Selector chooses a cluster count by silhouette score over a range of
// candidates derived from the number of points.
type Selector struct {
	MinClusters   int
	MaxClusters   int
	MaxCandidates int
	Seed          int64
	Restarts      int
	MaxIter       int
	Parallel      bool
	Logger        *log.Logger
}

// Bounds returns the inclusive candidate range for n points.
func (s *Selector) Bounds(n int) (minK, maxK int) {
	minK = min(s.MinClusters, max(2, n/20))
	maxK = min(s.MaxClusters, max(minK+2, n/5))
	return minK, maxK
}

// Candidates lists the cluster counts to evaluate for n points. Ranges wider
// than MaxCandidates are sampled evenly, both ends included.
func (s *Selector) Candidates(n int) []int {
	minK, maxK := s.Bounds(n)
	if maxK < minK {
		return nil
	}
	span := maxK - minK + 1
	limit := s.MaxCandidates
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}
	if span <= limit {
		ks := make([]int, 0, span)
		for k := minK; k <= maxK; k++ {
			ks = append(ks, k)
		}
		return ks
	}
	if limit == 1 {
		return []int{minK}
	}
	ks := make([]int, 0, limit)
	for i := 0; i < limit; i++ {
		k := minK + i*(maxK-minK)/(limit-1)
		if len(ks) == 0 || ks[len(ks)-1] != k {
			ks = append(ks, k)
		}
	}
	return ks
}

// Select returns the candidate with the highest silhouette score on the
// standardized vectors. Ties go to the smaller k. When no candidate can be
// scored the lower bound is returned.
func (s *Selector) Select(ctx context.Context, vectors [][]float64) (int, error) {
	l := logger.OrDiscard(s.Logger)
	n := len(vectors)
	minK, _ := s.Bounds(n)
	ks := s.Candidates(n)
	if len(ks) < 2 {
		return minK, nil
	}

	scaled := Standardize(vectors)
	scores := make([]float64, len(ks))
	valid := make([]bool, len(ks))

	evaluate := func(i int) {
		k := ks[i]
		if k >= n {
			return
		}
		res, err := KMeans{K: k, Seed: s.Seed, Restarts: s.Restarts, MaxIter: s.MaxIter}.Fit(scaled)
		if err != nil {
			l.Debug("candidate skipped", "k", k, "err", err)
			return
		}
		scores[i], valid[i] = Silhouette(scaled, res.Labels)
		l.Debug("silhouette", "k", k, "score", scores[i], "valid", valid[i])
	}

	if s.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range ks {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				evaluate(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return 0, fmt.Errorf("select cluster count: %w", err)
		}
	} else {
		for i := range ks {
			if err := ctx.Err(); err != nil {
				return 0, fmt.Errorf("select cluster count: %w", err)
			}
			evaluate(i)
		}
	}

	best, ok := pickBest(scores, valid)
	if !ok {
		l.Debug("no valid silhouette, using lower bound", "k", minK)
		return minK, nil
	}
	l.Debug("cluster count selected", "k", ks[best], "score", scores[best])
	return ks[best], nil
}

// pickBest returns the index of the highest valid score. Scores are indexed
// like the ascending candidate list, so the first maximum is the smallest k.
func pickBest(scores []float64, valid []bool) (int, bool) {
	best := -1
	for i := range scores {
		if valid[i] && (best < 0 || scores[i] > scores[best]) {
			best = i
		}
	}
	return best, best >= 0
}
