// Package cluster partitions chunk vectors with k-means and picks the cluster
// count by silhouette score.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultRestarts = 10
	DefaultMaxIter  = 300
	DefaultTol      = 1e-4
)

var ErrInvalidK = errors.New("k must be between 1 and the number of points")

// KMeans is a seeded k-means configuration. The zero values of Restarts,
// MaxIter and Tol fall back to the package defaults.
type KMeans struct {
	K        int
	Seed     int64
	Restarts int
	MaxIter  int
	Tol      float64
}

// Result is the best partition found across restarts.
type Result struct {
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// Fit partitions points into K clusters. Every id in [0,K) labels at least one
// point. Identical inputs and seed give identical results.
func (km KMeans) Fit(points [][]float64) (Result, error) {
	n := len(points)
	if km.K < 1 || km.K > n {
		return Result{}, fmt.Errorf("%w: k=%d n=%d", ErrInvalidK, km.K, n)
	}
	restarts, maxIter, tol := km.Restarts, km.MaxIter, km.Tol
	if restarts <= 0 {
		restarts = DefaultRestarts
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	if tol <= 0 {
		tol = DefaultTol
	}
	tolAbs := tol * meanVariance(points)

	seed := uint64(km.Seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var best Result
	for r := 0; r < restarts; r++ {
		res := km.run(points, rng, maxIter, tolAbs)
		if r == 0 || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

func (km KMeans) run(points [][]float64, rng *rand.Rand, maxIter int, tolAbs float64) Result {
	centers := initPlusPlus(points, km.K, rng)
	labels := make([]int, len(points))
	for it := 0; it < maxIter; it++ {
		assignNearest(points, centers, labels)
		fillEmpty(points, centers, labels)
		next := means(points, labels, km.K)
		shift := 0.0
		for j := range centers {
			shift += sqDist(centers[j], next[j])
		}
		centers = next
		if shift <= tolAbs {
			break
		}
	}
	assignNearest(points, centers, labels)
	fillEmpty(points, centers, labels)

	inertia := 0.0
	for i, p := range points {
		inertia += sqDist(p, centers[labels[i]])
	}
	return Result{Labels: labels, Centroids: centers, Inertia: inertia}
}

// initPlusPlus picks k starting centers, each new one drawn with probability
// proportional to its squared distance from the nearest chosen center.
func initPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.IntN(n)]))

	d2 := make([]float64, n)
	for i, p := range points {
		d2[i] = sqDist(p, centers[0])
	}
	for len(centers) < k {
		total := floats.Sum(d2)
		idx := rng.IntN(n)
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range d2 {
				acc += d
				if acc >= target && d > 0 {
					idx = i
					break
				}
			}
		}
		c := clone(points[idx])
		centers = append(centers, c)
		for i, p := range points {
			if d := sqDist(p, c); d < d2[i] {
				d2[i] = d
			}
		}
	}
	return centers
}

func assignNearest(points, centers [][]float64, labels []int) {
	for i, p := range points {
		best, bestD := 0, math.Inf(1)
		for j, c := range centers {
			if d := sqDist(p, c); d < bestD {
				best, bestD = j, d
			}
		}
		labels[i] = best
	}
}

// fillEmpty moves the point farthest from its center, taken from a cluster
// with more than one member, into each empty cluster.
func fillEmpty(points, centers [][]float64, labels []int) {
	counts := make([]int, len(centers))
	for _, l := range labels {
		counts[l]++
	}
	for j := range centers {
		if counts[j] > 0 {
			continue
		}
		far, farD := -1, -1.0
		for i, p := range points {
			if counts[labels[i]] < 2 {
				continue
			}
			if d := sqDist(p, centers[labels[i]]); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			return
		}
		counts[labels[far]]--
		labels[far] = j
		counts[j] = 1
		centers[j] = clone(points[far])
	}
}

func means(points [][]float64, labels []int, k int) [][]float64 {
	dim := len(points[0])
	out := make([][]float64, k)
	counts := make([]float64, k)
	for j := range out {
		out[j] = make([]float64, dim)
	}
	for i, p := range points {
		floats.Add(out[labels[i]], p)
		counts[labels[i]]++
	}
	for j := range out {
		if counts[j] > 0 {
			floats.Scale(1/counts[j], out[j])
		}
	}
	return out
}

func meanVariance(points [][]float64) float64 {
	if len(points) == 0 || len(points[0]) == 0 {
		return 0
	}
	dim := len(points[0])
	col := make([]float64, len(points))
	sum := 0.0
	for d := 0; d < dim; d++ {
		for i, p := range points {
			col[i] = p[d]
		}
		_, std := stat.PopMeanStdDev(col, nil)
		sum += std * std
	}
	return sum / float64(dim)
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
