package cluster

import "gonum.org/v1/gonum/floats"

// Silhouette returns the mean silhouette coefficient of a partition and
// whether it is defined. It is undefined when the labels use fewer than two or
// more than n-1 distinct clusters. Points alone in their cluster score 0.
func Silhouette(points [][]float64, labels []int) (float64, bool) {
	n := len(points)
	if n == 0 || len(labels) != n {
		return 0, false
	}
	sizes := map[int]int{}
	for _, l := range labels {
		sizes[l]++
	}
	if len(sizes) < 2 || len(sizes) > n-1 {
		return 0, false
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := floats.Distance(points[i], points[j], 2)
			dist[i][j], dist[j][i] = d, d
		}
	}

	total := 0.0
	for i := 0; i < n; i++ {
		own := labels[i]
		if sizes[own] == 1 {
			continue
		}
		sums := map[int]float64{}
		for j := 0; j < n; j++ {
			if j != i {
				sums[labels[j]] += dist[i][j]
			}
		}
		a := sums[own] / float64(sizes[own]-1)
		b := -1.0
		for l, s := range sums {
			if l == own {
				continue
			}
			if m := s / float64(sizes[l]); b < 0 || m < b {
				b = m
			}
		}
		if den := max(a, b); den > 0 {
			total += (b - a) / den
		}
	}
	return total / float64(n), true
}
