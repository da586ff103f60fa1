package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affinityhq/affinity/pkg/models"
)

// twoBlobs is clearly separated test data: three rows near the origin,
// three near (8, 8).
var twoBlobs = [][]float64{
	{0, 0},
	{0.2, 0.1},
	{0.1, 0.3},
	{8, 8},
	{8.2, 8.1},
	{7.9, 8.3},
}

// assertContiguousLabels checks the renumbering contract: labels are
// 0..k-1 and new ids appear in increasing order over the rows.
func assertContiguousLabels(t *testing.T, labels []int, k int) {
	t.Helper()
	seen := make(map[int]bool, k)
	next := 0
	for _, l := range labels {
		require.GreaterOrEqual(t, l, 0)
		require.Less(t, l, k)
		if !seen[l] {
			require.Equal(t, next, l, "labels must first appear in increasing order")
			seen[l] = true
			next++
		}
	}
	require.Len(t, seen, k)
}

// ===== VALIDATION =====

func TestPartition_RejectsUnknownMethod(t *testing.T) {
	t.Parallel()

	_, err := Partition(twoBlobs, 2, models.Method("spectral"), DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestPartition_RejectsBadClusterCounts(t *testing.T) {
	t.Parallel()

	for _, k := range []int{0, -1, len(twoBlobs) + 1} {
		for _, method := range models.AllMethods {
			_, err := Partition(twoBlobs, k, method, DefaultConfig())
			assert.ErrorIs(t, err, ErrInvalidClusterCount, "k=%d method=%s", k, method)
		}
	}
}

// ===== PARTITIONING =====

func TestPartition_SeparatesBlobs(t *testing.T) {
	t.Parallel()

	for _, method := range models.AllMethods {
		t.Run(string(method), func(t *testing.T) {
			res, err := Partition(twoBlobs, 2, method, DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, res.Labels)
			assert.Equal(t, 2, res.K)
			assert.Equal(t, method, res.Method)
		})
	}
}

func TestPartition_SingleCluster(t *testing.T) {
	t.Parallel()

	for _, method := range models.AllMethods {
		res, err := Partition(twoBlobs, 1, method, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, res.Labels, method)
	}
}

func TestPartition_EveryRowItsOwnCluster(t *testing.T) {
	t.Parallel()

	for _, method := range models.AllMethods {
		res, err := Partition(twoBlobs, len(twoBlobs), method, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, res.Labels, method)
		if method == models.MethodKMeans {
			assert.Zero(t, res.Inertia)
		}
	}
}

func TestPartition_LabelsAreContiguous(t *testing.T) {
	t.Parallel()

	for _, method := range models.AllMethods {
		for k := 1; k <= len(twoBlobs); k++ {
			res, err := Partition(twoBlobs, k, method, DefaultConfig())
			require.NoError(t, err, "method=%s k=%d", method, k)
			assertContiguousLabels(t, res.Labels, k)
		}
	}
}

func TestPartition_DuplicateRowsStillYieldKClusters(t *testing.T) {
	t.Parallel()

	// Three coincident rows force the empty-cluster relocation path in
	// k-means; the label count must still come out exact.
	dupes := [][]float64{{1, 1}, {1, 1}, {1, 1}, {5, 5}}
	for _, method := range models.AllMethods {
		res, err := Partition(dupes, 3, method, DefaultConfig())
		require.NoError(t, err, method)
		assertContiguousLabels(t, res.Labels, 3)
	}
}

// ===== DETERMINISM =====

func TestPartition_Deterministic(t *testing.T) {
	t.Parallel()

	for _, method := range models.AllMethods {
		t.Run(string(method), func(t *testing.T) {
			a, err := Partition(twoBlobs, 3, method, DefaultConfig())
			require.NoError(t, err)
			b, err := Partition(twoBlobs, 3, method, DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, a.Labels, b.Labels)
			assert.Equal(t, a.Inertia, b.Inertia)
		})
	}
}

func TestPartition_RandomInitIsSeeded(t *testing.T) {
	t.Parallel()

	cfg := Config{Seed: 7, Restarts: 1, InitMethod: InitRandom}
	a, err := Partition(twoBlobs, 2, models.MethodKMeans, cfg)
	require.NoError(t, err)
	b, err := Partition(twoBlobs, 2, models.MethodKMeans, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Labels, b.Labels)
}

// ===== KMEANS INTERNALS =====

func TestKMeans_InertiaReflectsSpread(t *testing.T) {
	t.Parallel()

	tight, err := Partition(twoBlobs, 2, models.MethodKMeans, DefaultConfig())
	require.NoError(t, err)
	loose, err := Partition(twoBlobs, 1, models.MethodKMeans, DefaultConfig())
	require.NoError(t, err)

	// Two centroids fit two blobs tightly; one centroid cannot.
	assert.Greater(t, tight.Inertia, 0.0)
	assert.Less(t, tight.Inertia, 1.0)
	assert.Greater(t, loose.Inertia, tight.Inertia)
}

func TestSquaredDistance(t *testing.T) {
	t.Parallel()

	// Length 5 exercises both the unrolled block and the tail.
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 2, 1, 4, 8}
	assert.InDelta(t, 1+0+4+0+9, squaredDistance(a, b), 1e-12)
	assert.Zero(t, squaredDistance(a, a))
}

func TestRenumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{0, 1, 0, 2, 1}, renumber([]int{7, 2, 7, 5, 2}))
	assert.Equal(t, []int{0}, renumber([]int{3}))
	assert.Empty(t, renumber(nil))
}
