package chunker

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"docexplore/internal/domain"
)

const (
	// BoundaryMarker separates documents in the concatenated source text.
	BoundaryMarker = "\n\n=== NEW DOCUMENT ===\n\n"
	// ChunkDelimiter terminates every span in the chunk transport file.
	ChunkDelimiter = "\n---CHUNK END---\n"
	// DefaultMaxChars is used when no positive size is configured.
	DefaultMaxChars = 4000
)

// FixedChunker splits text into consecutive, non-overlapping spans of at most
// MaxChars code points, never crossing a document boundary.
type FixedChunker struct {
	maxChars int
}

func NewFixedChunker(maxChars int) *FixedChunker {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &FixedChunker{maxChars: maxChars}
}

// MaxChars returns the configured span size.
func (c *FixedChunker) MaxChars() int { return c.maxChars }

// Split returns the spans of every document in text. Spans are exact slices of
// the document, so joining a document's spans gives the document back.
func (c *FixedChunker) Split(text string) []string {
	var spans []string
	for _, doc := range strings.Split(text, BoundaryMarker) {
		if strings.TrimSpace(doc) == "" {
			continue
		}
		spans = append(spans, c.splitDocument(doc)...)
	}
	return spans
}

func (c *FixedChunker) splitDocument(doc string) []string {
	var out []string
	start, count := 0, 0
	for i := range doc {
		if count == c.maxChars {
			out = append(out, doc[start:i])
			start, count = i, 0
		}
		count++
	}
	if start < len(doc) {
		out = append(out, doc[start:])
	}
	return out
}

// SpanCount returns how many spans a document of n code points produces.
func (c *FixedChunker) SpanCount(doc string) int {
	if strings.TrimSpace(doc) == "" {
		return 0
	}
	n := utf8.RuneCountInString(doc)
	return (n + c.maxChars - 1) / c.maxChars
}

// Encode writes each span followed by ChunkDelimiter.
func Encode(w io.Writer, spans []string) error {
	bw := bufio.NewWriter(w)
	for _, s := range spans {
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
		if _, err := bw.WriteString(ChunkDelimiter); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads a chunk transport stream and returns the spans unchanged.
func Decode(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	parts := strings.Split(string(data), ChunkDelimiter)
	// Encode terminates every span, so the final element is the empty tail.
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts, nil
}

// Records trims each span, drops the ones left empty and numbers the rest
// from zero.
func Records(spans []string) []domain.Chunk {
	out := make([]domain.Chunk, 0, len(spans))
	for _, s := range spans {
		text := strings.TrimSpace(s)
		if text == "" {
			continue
		}
		out = append(out, domain.Chunk{ID: len(out), Text: text})
	}
	return out
}
