package cluster

import (
	"math"
	"math/rand"
	"slices"
)

// kmeans runs cfg.Restarts independent Lloyd iterations, each seeded
// from cfg.Seed plus the restart index, and keeps the assignment with
// the lowest inertia. Equal inertia keeps the earlier restart, so the
// outcome is deterministic for a fixed config.
func kmeans(rows [][]float64, k int, cfg Config) ([]int, float64) {
	n := len(rows)
	if k == n {
		// Every row is its own cluster; no iteration needed.
		labels := make([]int, n)
		for i := range labels {
			labels[i] = i
		}
		return labels, 0
	}

	bestLabels := make([]int, n)
	bestInertia := math.Inf(1)
	for r := 0; r < cfg.Restarts; r++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(r)))
		labels, totalInertia := kmeansOnce(rows, k, cfg, rng)
		if totalInertia < bestInertia {
			bestInertia = totalInertia
			copy(bestLabels, labels)
		}
	}
	return bestLabels, bestInertia
}

// kmeansOnce performs a single init + Lloyd iteration run.
func kmeansOnce(rows [][]float64, k int, cfg Config, rng *rand.Rand) ([]int, float64) {
	var centroids [][]float64
	if cfg.InitMethod == InitRandom {
		centroids = initRandom(rows, k, rng)
	} else {
		centroids = initKMeansPlusPlus(rows, k, rng)
	}

	n := len(rows)
	dims := len(rows[0])
	assignments := make([]int, n)
	counts := make([]int, k)
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dims)
	}

	reseeds := 0
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		changed := assignRows(rows, centroids, assignments)
		if iter > 0 && changed == 0 && reseeds == 0 {
			break
		}
		countMembers(assignments, counts)
		reseeds = reseedEmpty(rows, centroids, assignments, counts)
		updateMeans(rows, assignments, centroids, sums, counts)
	}

	// Degenerate inputs (duplicate rows) can leave a cluster empty at
	// the iteration cap; claim rows for them so exactly k labels exist.
	countMembers(assignments, counts)
	reseedEmpty(rows, centroids, assignments, counts)

	return assignments, inertia(rows, centroids, assignments)
}

// initKMeansPlusPlus picks the first centroid uniformly and each later
// one with probability proportional to its squared distance from the
// nearest already-chosen centroid.
func initKMeansPlusPlus(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(rows)
	centroids := make([][]float64, k)
	centroids[0] = slices.Clone(rows[rng.Intn(n)])

	minDist := make([]float64, n)
	for i, row := range rows {
		minDist[i] = squaredDistance(row, centroids[0])
	}

	for c := 1; c < k; c++ {
		total := 0.0
		for _, d := range minDist {
			total += d
		}

		idx := n - 1
		if total > 0 {
			target := rng.Float64() * total
			cum := 0.0
			for i, d := range minDist {
				cum += d
				if cum >= target {
					idx = i
					break
				}
			}
		} else {
			// Remaining rows all coincide with chosen centroids.
			idx = rng.Intn(n)
		}
		centroids[c] = slices.Clone(rows[idx])

		for i, row := range rows {
			if d := squaredDistance(row, centroids[c]); d < minDist[i] {
				minDist[i] = d
			}
		}
	}
	return centroids
}

// initRandom picks k distinct rows as the starting centroids.
func initRandom(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(len(rows))[:k] {
		centroids[i] = slices.Clone(rows[idx])
	}
	return centroids
}

// assignRows moves every row to its nearest centroid and reports how
// many assignments changed. Distance ties keep the lowest centroid.
func assignRows(rows, centroids [][]float64, assignments []int) int {
	changed := 0
	for i, row := range rows {
		nearest := 0
		minDist := math.MaxFloat64
		for c, centroid := range centroids {
			if d := squaredDistance(row, centroid); d < minDist {
				minDist = d
				nearest = c
			}
		}
		if assignments[i] != nearest {
			assignments[i] = nearest
			changed++
		}
	}
	return changed
}

func countMembers(assignments []int, counts []int) {
	for c := range counts {
		counts[c] = 0
	}
	for _, a := range assignments {
		counts[a]++
	}
}

// reseedEmpty relocates each empty centroid onto the row farthest from
// its current centroid and claims that row. Singleton clusters are
// never robbed, so one pass leaves every cluster populated.
func reseedEmpty(rows, centroids [][]float64, assignments []int, counts []int) int {
	empties := 0
	for c := range counts {
		if counts[c] > 0 {
			continue
		}
		empties++

		far, farDist := -1, -1.0
		for i, row := range rows {
			if counts[assignments[i]] <= 1 {
				continue
			}
			if d := squaredDistance(row, centroids[assignments[i]]); d > farDist {
				far, farDist = i, d
			}
		}
		if far < 0 {
			continue
		}
		counts[assignments[far]]--
		assignments[far] = c
		counts[c] = 1
		copy(centroids[c], rows[far])
	}
	return empties
}

// updateMeans recomputes each populated centroid as the mean of its
// rows, reusing the sums and counts buffers across iterations.
func updateMeans(rows [][]float64, assignments []int, centroids, sums [][]float64, counts []int) {
	for c := range sums {
		for d := range sums[c] {
			sums[c][d] = 0
		}
	}
	for i, row := range rows {
		c := assignments[i]
		for d, x := range row {
			sums[c][d] += x
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for d := range centroids[c] {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

// inertia is the total squared distance from each row to its centroid.
func inertia(rows, centroids [][]float64, assignments []int) float64 {
	total := 0.0
	for i, row := range rows {
		total += squaredDistance(row, centroids[assignments[i]])
	}
	return total
}

// squaredDistance computes squared euclidean distance with 4-way loop
// unrolling.
func squaredDistance(a, b []float64) float64 {
	n := len(a)
	var sum0, sum1, sum2, sum3 float64

	i := 0
	for ; i <= n-4; i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		sum0 += d0 * d0
		sum1 += d1 * d1
		sum2 += d2 * d2
		sum3 += d3 * d3
	}
	for ; i < n; i++ {
		d := a[i] - b[i]
		sum0 += d * d
	}
	return sum0 + sum1 + sum2 + sum3
}
