package cluster

import "math"

// agglomerate merges rows bottom-up with Ward linkage until k clusters
// remain. Every row starts as its own cluster; each step fuses the two
// closest clusters and refreshes the remaining distances through the
// Lance-Williams recurrence over squared euclidean distances. Merges
// with equal distance pick the lowest (i, j) slot pair, keeping the
// dendrogram deterministic. The pair scan makes this O(N^3), which is
// fine at the corpus sizes the engine targets.
func agglomerate(rows [][]float64, k int) []int {
	n := len(rows)
	slot := make([]int, n)
	for i := range slot {
		slot[i] = i
	}
	if k >= n {
		return slot
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := squaredDistance(rows[i], rows[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	size := make([]int, n)
	alive := make([]bool, n)
	for i := range size {
		size[i] = 1
		alive[i] = true
	}

	for remaining := n; remaining > k; remaining-- {
		bi, bj, best := -1, -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if alive[j] && dist[i][j] < best {
					best = dist[i][j]
					bi, bj = i, j
				}
			}
		}

		// Fold bj into bi and update bi's distances to every survivor:
		// d(i+j, c) = ((ni+nc)d(i,c) + (nj+nc)d(j,c) - nc*d(i,j)) / (ni+nj+nc)
		ni, nj := float64(size[bi]), float64(size[bj])
		for c := 0; c < n; c++ {
			if !alive[c] || c == bi || c == bj {
				continue
			}
			nc := float64(size[c])
			d := ((ni+nc)*dist[bi][c] + (nj+nc)*dist[bj][c] - nc*dist[bi][bj]) / (ni + nj + nc)
			dist[bi][c] = d
			dist[c][bi] = d
		}

		size[bi] += size[bj]
		alive[bj] = false
		for r := range slot {
			if slot[r] == bj {
				slot[r] = bi
			}
		}
	}
	return slot
}
