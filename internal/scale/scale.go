// Package scale provides per-column z-score normalization for feature
// matrices: every column is centered on its mean and divided by its
// population standard deviation.
package scale

import "math"

// Stats holds the per-column mean and population standard deviation
// captured by Fit. It is an artifact of the corpus it was fitted on.
type Stats struct {
	Mean []float64
	Std  []float64
}

// Fit computes column statistics for matrix. All rows must have the
// same length.
func Fit(matrix [][]float64) *Stats {
	if len(matrix) == 0 {
		return &Stats{}
	}
	rows := float64(len(matrix))
	cols := len(matrix[0])

	mean := make([]float64, cols)
	for _, row := range matrix {
		for j, x := range row {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= rows
	}

	std := make([]float64, cols)
	for _, row := range matrix {
		for j, x := range row {
			d := x - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / rows)
	}
	return &Stats{Mean: mean, Std: std}
}

// Transform returns a new matrix with every column z-scored against
// the fitted statistics. Zero-variance columns come out as exactly 0
// in every row; the input is never modified.
func (s *Stats) Transform(matrix [][]float64) [][]float64 {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		scaled := make([]float64, len(row))
		for j, x := range row {
			if s.Std[j] == 0 {
				continue
			}
			scaled[j] = (x - s.Mean[j]) / s.Std[j]
		}
		out[i] = scaled
	}
	return out
}

// FitTransform fits statistics on matrix and scales it in one call.
func FitTransform(matrix [][]float64) ([][]float64, *Stats) {
	stats := Fit(matrix)
	return stats.Transform(matrix), stats
}

// ColumnStd returns the population standard deviation of every column.
// Run over an already-scaled matrix this is the feature-importance
// signal: varying columns sit near 1, constant columns at 0.
func ColumnStd(matrix [][]float64) []float64 {
	return Fit(matrix).Std
}
