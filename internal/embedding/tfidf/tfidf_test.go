package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docexplore/internal/domain"
)

var _ domain.Embedder = (*Embedder)(nil)

func norm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

func TestPrepare_VocabularyIsSorted(t *testing.T) {
	e := NewEmbedder(0)
	require.NoError(t, e.Prepare([]string{"The revenue grew", "Revenue and costs"}))

	assert.Equal(t, []string{"and", "costs", "grew", "revenue", "the"}, e.Terms())
	assert.Equal(t, 5, e.Dimension())
}

func TestPrepare_NumericAndAccentedTerms(t *testing.T) {
	e := NewEmbedder(0)
	require.NoError(t, e.Prepare([]string{"2021 2022 100 200", "café 2021 x"}))
	assert.Equal(t, []string{"100", "200", "2021", "2022", "café"}, e.Terms())

	vec, err := e.Embed("2021 revenue")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, norm(vec), 1e-9)
}

func TestPrepare_MaxFeaturesKeepsMostFrequent(t *testing.T) {
	e := NewEmbedder(2)
	corpus := []string{
		"revenue revenue revenue costs",
		"costs margin zebra",
		"apple",
	}
	require.NoError(t, e.Prepare(corpus))
	assert.Equal(t, []string{"costs", "revenue"}, e.Terms())
}

func TestPrepare_TiesBrokenAlphabetically(t *testing.T) {
	e := NewEmbedder(2)
	require.NoError(t, e.Prepare([]string{"zebra apple mango"}))
	assert.Equal(t, []string{"apple", "mango"}, e.Terms())
}

func TestPrepare_Errors(t *testing.T) {
	assert.ErrorIs(t, NewEmbedder(10).Prepare(nil), ErrEmptyCorpus)
	assert.ErrorIs(t, NewEmbedder(10).Prepare([]string{"a b c", "1 ! ?"}), ErrEmptyVocabulary)
}

func TestEmbed_BeforePrepare(t *testing.T) {
	_, err := NewEmbedder(10).Embed("revenue")
	assert.ErrorIs(t, err, ErrNotPrepared)
}

func TestEmbed_NormalizedAndSmoothedIDF(t *testing.T) {
	e := NewEmbedder(10)
	require.NoError(t, e.Prepare([]string{"revenue costs", "revenue"}))

	vec, err := e.Embed("revenue costs")
	require.NoError(t, err)
	require.Len(t, vec, 2)
	assert.InDelta(t, 1.0, norm(vec), 1e-9)

	// idf(costs) = ln(3/2)+1, idf(revenue) = ln(3/3)+1 = 1
	idfCosts := math.Log(1.5) + 1
	assert.InDelta(t, idfCosts/1.0, vec[0]/vec[1], 1e-9)
}

func TestEmbed_UnknownTextIsZeroVector(t *testing.T) {
	e := NewEmbedder(10)
	require.NoError(t, e.Prepare([]string{"revenue"}))
	vec, err := e.Embed("nothing familiar here")
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, vec)
}

func TestEmbed_Deterministic(t *testing.T) {
	corpus := []string{"market share expanded", "costs rose sharply", "market costs"}
	a, b := NewEmbedder(5), NewEmbedder(5)
	require.NoError(t, a.Prepare(corpus))
	require.NoError(t, b.Prepare(corpus))
	for _, text := range corpus {
		va, _ := a.Embed(text)
		vb, _ := b.Embed(text)
		assert.Equal(t, va, vb)
	}
}
