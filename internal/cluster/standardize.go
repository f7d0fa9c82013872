package cluster

import "gonum.org/v1/gonum/stat"

// Standardize rescales every dimension to zero mean and unit population
// standard deviation. Dimensions without variance become 0.
func Standardize(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return nil
	}
	dim := len(points[0])
	out := make([][]float64, len(points))
	for i := range out {
		out[i] = make([]float64, dim)
	}
	col := make([]float64, len(points))
	for d := 0; d < dim; d++ {
		for i, p := range points {
			col[i] = p[d]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			continue
		}
		for i := range points {
			out[i][d] = (col[i] - mean) / std
		}
	}
	return out
}
