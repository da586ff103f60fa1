// Package cluster partitions scaled feature rows into groups, either
// by seeded k-means with restarts or by agglomerative (Ward) merging.
// Both methods hand back labels renumbered contiguously from 0 in
// order of first appearance, so label 0 always belongs to the first
// row and identical inputs always produce identical labels.
package cluster

import (
	"errors"
	"fmt"

	"github.com/affinityhq/affinity/pkg/models"
)

var (
	// ErrInvalidMethod is returned for a clustering method other than
	// kmeans or hierarchical.
	ErrInvalidMethod = errors.New("cluster: unknown clustering method")

	// ErrInvalidClusterCount is returned when the requested cluster
	// count is below 1 or above the number of rows.
	ErrInvalidClusterCount = errors.New("cluster: cluster count out of range")
)

// K-means defaults for Config fields left at zero.
const (
	DefaultSeed          = 42
	DefaultRestarts      = 10
	DefaultMaxIterations = 100
)

// Centroid initialization methods.
const (
	InitKMeansPlusPlus = "kmeans++"
	InitRandom         = "random"
)

// Config tunes the k-means runs. Agglomerative clustering is fully
// deterministic and takes no tuning.
type Config struct {
	// Seed fixes the random source so repeated runs agree. Zero uses
	// DefaultSeed.
	Seed int64
	// Restarts is the number of independent k-means runs; the run with
	// the lowest inertia wins, first winner on ties.
	Restarts int
	// MaxIterations bounds each run's assignment/update loop.
	MaxIterations int
	// InitMethod is InitKMeansPlusPlus (default) or InitRandom.
	InitMethod string
}

// DefaultConfig returns the standard k-means settings.
func DefaultConfig() Config {
	return Config{
		Seed:          DefaultSeed,
		Restarts:      DefaultRestarts,
		MaxIterations: DefaultMaxIterations,
		InitMethod:    InitKMeansPlusPlus,
	}
}

func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.Restarts <= 0 {
		c.Restarts = DefaultRestarts
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.InitMethod == "" {
		c.InitMethod = InitKMeansPlusPlus
	}
	return c
}

// Result is the outcome of one Partition call.
type Result struct {
	// Labels holds one cluster id per row, contiguous from 0 in order
	// of first appearance.
	Labels []int
	K      int
	Method models.Method
	// Inertia is the winning run's total squared distance to the
	// centroids. Always 0 for hierarchical clustering.
	Inertia float64
}

// Partition groups rows into k clusters with the chosen method.
func Partition(rows [][]float64, k int, method models.Method, cfg Config) (*Result, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	n := len(rows)
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: %d clusters for %d rows", ErrInvalidClusterCount, k, n)
	}

	var labels []int
	var totalInertia float64
	switch method {
	case models.MethodKMeans:
		labels, totalInertia = kmeans(rows, k, cfg.withDefaults())
	case models.MethodHierarchical:
		labels = agglomerate(rows, k)
	}

	return &Result{
		Labels:  renumber(labels),
		K:       k,
		Method:  method,
		Inertia: totalInertia,
	}, nil
}

// renumber maps raw labels to contiguous ids assigned in order of
// first appearance over the row order.
func renumber(labels []int) []int {
	remap := make(map[int]int, len(labels))
	out := make([]int, len(labels))
	next := 0
	for i, l := range labels {
		id, ok := remap[l]
		if !ok {
			id = next
			remap[l] = id
			next++
		}
		out[i] = id
	}
	return out
}
