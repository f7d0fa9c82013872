package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docexplore/internal/domain"
	"docexplore/internal/embedding/tfidf"
)

func TestVectorizeAll(t *testing.T) {
	chunks := []domain.Chunk{
		{ID: 0, Text: "revenue grew strongly"},
		{ID: 1, Text: "costs were reduced"},
	}
	out, err := VectorizeAll(tfidf.NewEmbedder(100), chunks)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0].Embedding, len(out[1].Embedding))
	assert.True(t, out[0].HasEmbedding())
	assert.False(t, chunks[0].HasEmbedding(), "input chunks are not mutated")
}

func TestVectorizeAll_NoChunks(t *testing.T) {
	_, err := VectorizeAll(tfidf.NewEmbedder(100), nil)
	assert.ErrorIs(t, err, domain.ErrNoChunks)
}

func TestVectorizeAll_EmptyVocabulary(t *testing.T) {
	_, err := VectorizeAll(tfidf.NewEmbedder(100), []domain.Chunk{{Text: "a b c 1 2"}})
	assert.ErrorIs(t, err, tfidf.ErrEmptyVocabulary)
}
