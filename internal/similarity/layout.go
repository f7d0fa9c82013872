package similarity

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/mds"

	"docexplore/internal/domain"
)

var ErrLayoutUnavailable = errors.New("layout unavailable: no topic has member vectors")

// TopicVectors is a topic with the vectors of its members. Members without a
// vector are simply absent.
type TopicVectors struct {
	ClusterID int
	Name      string
	Vectors   [][]float64
}

// LayoutResult holds placed topics and the names of topics that could not be
// placed.
type LayoutResult struct {
	Points      []domain.LayoutPoint
	Unavailable []string
}

// Centroid returns the element-wise mean of vectors, or nil when there are none
// or their lengths differ.
func Centroid(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		if len(v) != len(out) {
			return nil
		}
		floats.Add(out, v)
	}
	floats.Scale(1/float64(len(vectors)), out)
	return out
}

// Layout projects topic centroids onto two axes with classical MDS over
// 1 - cosine distances. Axes are oriented so that the coordinate with the
// largest magnitude is positive, which makes the output reproducible.
func Layout(topics []TopicVectors) (LayoutResult, error) {
	var res LayoutResult
	var placed []TopicVectors
	var centroids [][]float64
	for _, t := range topics {
		c := Centroid(t.Vectors)
		if c == nil {
			res.Unavailable = append(res.Unavailable, t.Name)
			continue
		}
		placed = append(placed, t)
		centroids = append(centroids, c)
	}
	n := len(placed)
	if n == 0 {
		return res, ErrLayoutUnavailable
	}

	coords := make([][2]float64, n)
	dis := mat.NewSymDense(n, nil)
	spread := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := 1 - Cosine(centroids[i], centroids[j])
			dis.SetSym(i, j, d)
			spread = max(spread, d)
		}
	}
	// Coincident centroids all stay at the origin.
	if spread > 1e-12 {
		var dst mat.Dense
		k, _ := mds.TorgersonScaling(&dst, make([]float64, n), dis)
		for axis := 0; axis < 2 && axis < k; axis++ {
			for i := 0; i < n; i++ {
				coords[i][axis] = dst.At(i, axis)
			}
		}
		orient(coords)
	}

	for i, t := range placed {
		res.Points = append(res.Points, domain.LayoutPoint{
			Topic:     t.Name,
			ClusterID: t.ClusterID,
			X:         coords[i][0],
			Y:         coords[i][1],
		})
	}
	return res, nil
}

func orient(coords [][2]float64) {
	for axis := 0; axis < 2; axis++ {
		big := 0.0
		for _, c := range coords {
			if math.Abs(c[axis]) > math.Abs(big) {
				big = c[axis]
			}
		}
		if big < 0 {
			for i := range coords {
				coords[i][axis] = -coords[i][axis]
			}
		}
	}
}
