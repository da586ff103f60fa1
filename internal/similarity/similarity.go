// Package similarity computes dense pairwise cosine similarity and the
// ranked neighbour and pair queries that run on top of it.
package similarity

import (
	"math"
	"sort"
)

// Cosine returns the cosine similarity between two equal-length
// vectors. Zero-norm vectors score 0 against everything, including
// each other.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Matrix computes the dense N x N cosine matrix for rows. The result
// is symmetric with 1 on the diagonal; inputs are z-scored feature
// rows, so off-diagonal values range over [-1, 1]. Cost is O(N^2 * V).
func Matrix(rows [][]float64) [][]float64 {
	n := len(rows)
	norms := make([]float64, n)
	for i, row := range rows {
		var sum float64
		for _, x := range row {
			sum += x * x
		}
		norms[i] = math.Sqrt(sum)
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		out[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var s float64
			if norms[i] > 0 && norms[j] > 0 {
				var dot float64
				for x := range rows[i] {
					dot += rows[i][x] * rows[j][x]
				}
				s = dot / (norms[i] * norms[j])
			}
			out[i][j] = s
			out[j][i] = s
		}
	}
	return out
}

// Neighbor is a row index paired with its similarity score.
type Neighbor struct {
	Index int
	Score float64
}

// TopNeighbors ranks every row other than i by similarity to i,
// descending. The sort is stable, so equal scores keep row order.
// Returns min(k, N-1) entries; a one-row matrix or k <= 0 yields nil.
func TopNeighbors(matrix [][]float64, i, k int) []Neighbor {
	n := len(matrix)
	if k <= 0 || n <= 1 || i < 0 || i >= n {
		return nil
	}
	cands := make([]Neighbor, 0, n-1)
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		cands = append(cands, Neighbor{Index: j, Score: matrix[i][j]})
	}
	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].Score > cands[b].Score
	})
	if k < len(cands) {
		cands = cands[:k]
	}
	return cands
}

// Pair is an upper-triangle matrix entry (I < J) with its score.
type Pair struct {
	I     int
	J     int
	Score float64
}

// TopPairs ranks every unordered pair by similarity, descending.
// Pairs are generated in (i, j) order and sorted stably, so equal
// scores keep index order. Returns min(k, N*(N-1)/2) entries.
func TopPairs(matrix [][]float64, k int) []Pair {
	n := len(matrix)
	if k <= 0 || n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{I: i, J: j, Score: matrix[i][j]})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Score > pairs[b].Score
	})
	if k < len(pairs) {
		pairs = pairs[:k]
	}
	return pairs
}
