// Package similarity measures relatedness between vectors and topics and
// places topics on a plane.
package similarity

import (
	"gonum.org/v1/gonum/floats"
)

// Cosine returns the cosine similarity of a and b clamped to [-1, 1]. It is 0
// when the lengths differ or either vector has zero magnitude.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	sim := floats.Dot(a, b) / (na * nb)
	return min(1, max(-1, sim))
}
