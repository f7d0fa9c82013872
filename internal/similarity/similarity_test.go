package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-2, 0.5, 4}

	assert.InDelta(t, 1.0, Cosine(a, a), 1e-12)
	assert.Equal(t, Cosine(a, b), Cosine(b, a))
	assert.Equal(t, 0.0, Cosine(a, []float64{0, 0, 0}))
	assert.Equal(t, 0.0, Cosine(a, []float64{1, 2}))
	assert.InDelta(t, -1.0, Cosine(a, []float64{-1, -2, -3}), 1e-12)
}

func TestOverlap_SharedRevenue(t *testing.T) {
	topics := []TopicText{
		{Name: "Growth", Texts: []string{"Revenue growth", "strong"}},
		{Name: "Costs", Texts: []string{"revenue costs margin"}},
	}
	edges := Overlap(topics)
	require.Len(t, edges, 1)
	assert.Equal(t, "Growth", edges[0].TopicA)
	assert.Equal(t, "Costs", edges[0].TopicB)
	assert.Equal(t, 0.2, edges[0].Score)
}

func TestOverlap_DisjointNotReported(t *testing.T) {
	topics := []TopicText{
		{Name: "A", Texts: []string{"alpha bravo charlie"}},
		{Name: "B", Texts: []string{"delta echo foxtrot"}},
	}
	assert.Empty(t, Overlap(topics))
	assert.Equal(t, 0.0, Jaccard(WordSet(topics[0].Texts), WordSet(topics[1].Texts)))
}

func TestOverlap_SymmetricAndBounded(t *testing.T) {
	a := WordSet([]string{"market share expanded across regions"})
	b := WordSet([]string{"market share contracted across segments"})
	ab, ba := Jaccard(a, b), Jaccard(b, a)
	assert.Equal(t, ab, ba)
	assert.GreaterOrEqual(t, ab, 0.0)
	assert.LessOrEqual(t, ab, 1.0)
	assert.Equal(t, 1.0, Jaccard(a, a))
	assert.Equal(t, 0.0, Jaccard(nil, nil))
}

func TestOverlap_ThresholdIsExclusive(t *testing.T) {
	// one shared word out of ten distinct words is exactly 0.1
	topics := []TopicText{
		{Name: "A", Texts: []string{"shared alpha bravo charlie delta echo"}},
		{Name: "B", Texts: []string{"shared golf hotel india juliet"}},
	}
	assert.Empty(t, Overlap(topics))
}

func TestOverlap_HalfRoundsToEven(t *testing.T) {
	// one shared word out of eight distinct words is 0.125
	topics := []TopicText{
		{Name: "A", Texts: []string{"shared apple banana cherry grape"}},
		{Name: "B", Texts: []string{"shared lemon mango olive"}},
	}
	edges := Overlap(topics)
	require.Len(t, edges, 1)
	assert.Equal(t, 0.12, edges[0].Score)
}

func dist(a, b [2]float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

func TestLayout_PreservesDistances(t *testing.T) {
	topics := []TopicVectors{
		{ClusterID: 0, Name: "A", Vectors: [][]float64{{1, 0, 0}}},
		{ClusterID: 1, Name: "B", Vectors: [][]float64{{0, 1, 0}, {0, 1, 0}}},
		{ClusterID: 2, Name: "C", Vectors: [][]float64{{0, 0, 1}}},
	}
	res, err := Layout(topics)
	require.NoError(t, err)
	require.Len(t, res.Points, 3)
	assert.Empty(t, res.Unavailable)

	pts := make([][2]float64, 3)
	for i, p := range res.Points {
		pts[i] = [2]float64{p.X, p.Y}
	}
	assert.InDelta(t, 1.0, dist(pts[0], pts[1]), 1e-9)
	assert.InDelta(t, 1.0, dist(pts[1], pts[2]), 1e-9)
	assert.InDelta(t, 1.0, dist(pts[0], pts[2]), 1e-9)

	again, err := Layout(topics)
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestLayout_SkipsTopicsWithoutVectors(t *testing.T) {
	topics := []TopicVectors{
		{ClusterID: 0, Name: "A", Vectors: [][]float64{{1, 0}}},
		{ClusterID: 1, Name: "Empty"},
		{ClusterID: 2, Name: "B", Vectors: [][]float64{{0, 1}}},
	}
	res, err := Layout(topics)
	require.NoError(t, err)
	require.Len(t, res.Points, 2)
	assert.Equal(t, "A", res.Points[0].Topic)
	assert.Equal(t, "B", res.Points[1].Topic)
	assert.Equal(t, []string{"Empty"}, res.Unavailable)
	assert.InDelta(t, 1.0, math.Abs(res.Points[0].X-res.Points[1].X), 1e-9)
	assert.InDelta(t, 0.0, res.Points[0].Y, 1e-9)
}

func TestLayout_SingleTopicAtOrigin(t *testing.T) {
	res, err := Layout([]TopicVectors{{Name: "Only", Vectors: [][]float64{{0.3, 0.4}}}})
	require.NoError(t, err)
	require.Len(t, res.Points, 1)
	assert.Equal(t, 0.0, res.Points[0].X)
	assert.Equal(t, 0.0, res.Points[0].Y)
}

func TestLayout_Unavailable(t *testing.T) {
	res, err := Layout([]TopicVectors{{Name: "Empty"}})
	assert.ErrorIs(t, err, ErrLayoutUnavailable)
	assert.Equal(t, []string{"Empty"}, res.Unavailable)
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, []float64{1, 2}, Centroid([][]float64{{0, 1}, {2, 3}}))
	assert.Nil(t, Centroid(nil))
	assert.Nil(t, Centroid([][]float64{{1}, {1, 2}}))
}
