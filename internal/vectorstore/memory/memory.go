package memory

import (
	"errors"
	"math"
	"sort"
	"sync"

	"docexplore/internal/domain"
	"docexplore/internal/similarity"
	"docexplore/internal/textutil"
	"docexplore/internal/vectorstore"
)

var _ vectorstore.Storage = (*Storage)(nil)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
// Chunks without a vector are kept for lexical matching.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	chunks    []domain.Chunk
}

func NewStorage() *Storage { return &Storage{} }

// FromArtifact builds a store over every chunk of the artifact.
func FromArtifact(a domain.Artifact) (*Storage, error) {
	s := NewStorage()
	var chunks []domain.Chunk
	dim := 0
	for _, c := range a.Clusters {
		for _, it := range c.Items {
			if dim == 0 && it.HasEmbedding() {
				dim = len(it.Embedding)
			}
			chunks = append(chunks, it)
		}
	}
	if dim == 0 {
		dim = 1
	}
	if err := s.Init(dim); err != nil {
		return nil, err
	}
	if err := s.Upsert(chunks); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.chunks = nil
	return nil
}

func (s *Storage) Upsert(chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		if c.HasEmbedding() && len(c.Embedding) != s.dimension {
			return domain.ErrDimensionMismatch
		}
	}
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *Storage) Search(vector []float64, topK int, keep vectorstore.Filter) ([]vectorstore.SearchResult, error) {
	if len(vector) != s.dimension {
		return nil, domain.ErrDimensionMismatch
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []vectorstore.SearchResult
	for _, c := range s.chunks {
		if !c.HasEmbedding() || (keep != nil && !keep(c)) {
			continue
		}
		results = append(results, vectorstore.SearchResult{Chunk: c, Score: similarity.Cosine(c.Embedding, vector)})
	}
	return top(results, topK), nil
}

// Related returns the chunks most similar to ch from other clusters. Chunks
// without a usable vector are matched lexically.
func (s *Storage) Related(ch domain.Chunk, topK int) []vectorstore.SearchResult {
	own, hasOwn := ch.ClusterID()
	keep := func(c domain.Chunk) bool {
		if c.ID == ch.ID {
			return false
		}
		id, ok := c.ClusterID()
		return !hasOwn || !ok || id != own
	}
	if !isZero(ch.Embedding) {
		if res, err := s.Search(ch.Embedding, topK, keep); err == nil && len(res) > 0 && res[0].Score > 1e-9 {
			return res
		}
	}
	return s.lexicalSearch(ch.Text, topK, keep)
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	return nil
}

func (s *Storage) lexicalSearch(query string, topK int, keep vectorstore.Filter) []vectorstore.SearchResult {
	qset := tokenSet(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []vectorstore.SearchResult
	for _, c := range s.chunks {
		if keep != nil && !keep(c) {
			continue
		}
		if score := ochiai(qset, tokenSet(c.Text)); score > 0 {
			results = append(results, vectorstore.SearchResult{Chunk: c, Score: score})
		}
	}
	return top(results, topK)
}

func top(results []vectorstore.SearchResult, topK int) []vectorstore.SearchResult {
	if topK <= 0 {
		topK = 5
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK < len(results) {
		results = results[:topK]
	}
	return results
}

func tokenSet(text string) map[string]struct{} {
	tokens := textutil.Letters(text)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// ochiai is |A∩B| / sqrt(|A||B|).
func ochiai(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(a))*float64(len(b)))
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
