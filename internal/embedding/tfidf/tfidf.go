package tfidf

import (
	"errors"
	"math"
	"sort"

	"docexplore/internal/textutil"
)

// DefaultMaxFeatures caps the vocabulary when no positive limit is given.
const DefaultMaxFeatures = 1000

var (
	ErrEmptyCorpus     = errors.New("empty corpus for TF-IDF prepare")
	ErrEmptyVocabulary = errors.New("no tokens found in corpus")
	ErrNotPrepared     = errors.New("tfidf embedder not prepared")
)

// Embedder implements a TF-IDF vectorizer.
// It builds a bounded vocabulary from the corpus and computes IDF values.
// Terms are the same word tokens the topic namer reads, stop-words included.
// An instance is fitted once per run.
type Embedder struct {
	maxFeatures int
	vocabulary  map[string]int
	terms       []string
	idf         []float64
	dimension   int
	prepared    bool
}

// NewEmbedder creates an unprepared TF-IDF embedder keeping at most
// maxFeatures terms.
func NewEmbedder(maxFeatures int) *Embedder {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Embedder{
		maxFeatures: maxFeatures,
		vocabulary:  make(map[string]int),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	// Document and corpus frequencies
	df := make(map[string]int)
	tf := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range textutil.Words(text) {
			tf[tok]++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return ErrEmptyVocabulary
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	if len(terms) > e.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] != tf[terms[j]] {
				return tf[terms[i]] > tf[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:e.maxFeatures]
	}
	// Stable ordering for vocabulary
	sort.Strings(terms)

	e.terms = terms
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	N := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+N)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Terms returns the vocabulary in vector order.
func (e *Embedder) Terms() []string { return append([]string(nil), e.terms...) }

// Embed computes the L2-normalised TF-IDF embedding for the given text.
func (e *Embedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, ErrNotPrepared
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range textutil.Words(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		tfv := float64(count) / float64(total)
		vec[idx] = tfv * e.idf[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}
