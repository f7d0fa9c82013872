package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blobs() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{5, 5}, {5.1, 5}, {5, 5.1},
		{10, 0}, {10.1, 0}, {10, 0.1},
	}
}

func TestKMeans_SeparatesBlobs(t *testing.T) {
	res, err := KMeans{K: 3, Seed: 42}.Fit(blobs())
	require.NoError(t, err)

	assert.Equal(t, res.Labels[0], res.Labels[1])
	assert.Equal(t, res.Labels[0], res.Labels[2])
	assert.Equal(t, res.Labels[3], res.Labels[4])
	assert.Equal(t, res.Labels[6], res.Labels[8])
	assert.NotEqual(t, res.Labels[0], res.Labels[3])
	assert.NotEqual(t, res.Labels[3], res.Labels[6])
	assert.Less(t, res.Inertia, 1.0)
}

func TestKMeans_Deterministic(t *testing.T) {
	a, err := KMeans{K: 3, Seed: 7}.Fit(blobs())
	require.NoError(t, err)
	b, err := KMeans{K: 3, Seed: 7}.Fit(blobs())
	require.NoError(t, err)
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Inertia, b.Inertia)
}

func TestKMeans_DenseLabelsWithDuplicatePoints(t *testing.T) {
	points := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	res, err := KMeans{K: 3, Seed: 1}.Fit(points)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, l := range res.Labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 3)
		seen[l] = true
	}
	assert.Len(t, seen, 3)
}

func TestKMeans_InvalidK(t *testing.T) {
	_, err := KMeans{K: 0}.Fit(blobs())
	assert.ErrorIs(t, err, ErrInvalidK)
	_, err = KMeans{K: 10}.Fit(blobs())
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestSilhouette(t *testing.T) {
	points := blobs()
	good := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	score, ok := Silhouette(points, good)
	require.True(t, ok)
	assert.Greater(t, score, 0.9)
	assert.LessOrEqual(t, score, 1.0)

	bad := []int{0, 1, 2, 0, 1, 2, 0, 1, 2}
	worse, ok := Silhouette(points, bad)
	require.True(t, ok)
	assert.Less(t, worse, score)
	assert.GreaterOrEqual(t, worse, -1.0)
}

func TestSilhouette_Undefined(t *testing.T) {
	points := [][]float64{{0}, {1}, {2}}
	_, ok := Silhouette(points, []int{0, 0, 0})
	assert.False(t, ok)
	_, ok = Silhouette(points, []int{0, 1, 2})
	assert.False(t, ok)
}

func TestSilhouette_SingletonScoresZero(t *testing.T) {
	points := [][]float64{{0}, {0}, {10}}
	score, ok := Silhouette(points, []int{0, 0, 1})
	require.True(t, ok)
	// Two tight points score 1 each, the singleton scores 0.
	assert.InDelta(t, 2.0/3.0, score, 1e-9)
}

func TestStandardize(t *testing.T) {
	out := Standardize([][]float64{{1, 5}, {3, 5}})
	assert.Equal(t, [][]float64{{-1, 0}, {1, 0}}, out)
	assert.Nil(t, Standardize(nil))
}
