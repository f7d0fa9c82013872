package domain

import "context"

// Chunker splits concatenated document text into bounded spans.
type Chunker interface {
	Split(text string) []string
}

// Embedder converts free text into a numeric vector representation.
// Implementations require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Clusterer writes a cluster id onto every chunk.
type Clusterer interface {
	Assign(ctx context.Context, chunks []Chunk) ([]Chunk, error)
}

// TopicNamer labels clusters from their member texts.
type TopicNamer interface {
	NameAll(chunks []Chunk) map[int]string
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Extractor turns a source document into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
	SupportedExtensions() []string
}
