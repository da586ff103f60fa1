// Package project reduces scaled feature matrices to two dimensions
// for cluster layout. The two leading principal components are found
// by power iteration on X'X with deflation, which keeps the memory
// footprint at O(N*V) instead of forming the V x V covariance.
package project

import (
	"math"
	"math/rand"
)

const (
	maxIterations = 200
	tolerance     = 1e-12
)

// PCA2 returns the first two principal-component coordinates for every
// row of matrix. Rows are mean-centered per column first. Directions
// without spread (a single row, or an all-zero matrix) project to 0,
// and the component signs are normalized so identical input always
// yields identical output.
func PCA2(matrix [][]float64) [][2]float64 {
	n := len(matrix)
	out := make([][2]float64, n)
	if n == 0 || len(matrix[0]) == 0 {
		return out
	}

	centered := center(matrix)
	v1 := principalComponent(centered, nil)
	v2 := principalComponent(centered, v1)

	for i, row := range centered {
		out[i][0] = dot(row, v1)
		out[i][1] = dot(row, v2)
	}
	return out
}

func center(matrix [][]float64) [][]float64 {
	rows := float64(len(matrix))
	dims := len(matrix[0])

	mean := make([]float64, dims)
	for _, row := range matrix {
		for j, x := range row {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= rows
	}

	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		out[i] = make([]float64, dims)
		for j, x := range row {
			out[i][j] = x - mean[j]
		}
	}
	return out
}

// principalComponent runs power iteration on X'X, projecting out
// exclude when given, so successive calls return the first and second
// components. The start vector comes from a fixed seed; X'X is
// positive semi-definite, so the iterate cannot flip sign and
// convergence is read off dot(w, v) -> 1. A direction with no spread
// comes back as the zero vector.
func principalComponent(x [][]float64, exclude []float64) []float64 {
	dims := len(x[0])
	rng := rand.New(rand.NewSource(1))

	v := make([]float64, dims)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	deflate(v, exclude)
	if !normalize(v) {
		return make([]float64, dims)
	}

	w := make([]float64, dims)
	for iter := 0; iter < maxIterations; iter++ {
		multATAv(x, v, w)
		deflate(w, exclude)
		if !normalize(w) {
			return make([]float64, dims)
		}
		converged := 1-dot(w, v) < tolerance
		copy(v, w)
		if converged {
			break
		}
	}

	// Pin the sign: the largest-magnitude entry is positive.
	maxIdx := 0
	for i, c := range v {
		if math.Abs(c) > math.Abs(v[maxIdx]) {
			maxIdx = i
		}
	}
	if v[maxIdx] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
	return v
}

// multATAv stores X'(Xv) into out without materializing X'X.
func multATAv(x [][]float64, v, out []float64) {
	for j := range out {
		out[j] = 0
	}
	for _, row := range x {
		rv := dot(row, v)
		for j, xj := range row {
			out[j] += xj * rv
		}
	}
}

// deflate removes the direction component from v in place.
func deflate(v, direction []float64) {
	if direction == nil {
		return
	}
	p := dot(v, direction)
	for i := range v {
		v[i] -= p * direction[i]
	}
}

// normalize scales v to unit length in place, reporting false when the
// vector is (numerically) zero.
func normalize(v []float64) bool {
	norm := math.Sqrt(dot(v, v))
	if norm < 1e-15 {
		return false
	}
	for i := range v {
		v[i] /= norm
	}
	return true
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
