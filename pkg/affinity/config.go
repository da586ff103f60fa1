package affinity

import (
	"github.com/affinityhq/affinity/internal/cluster"
	"github.com/affinityhq/affinity/internal/vectorize"
)

// DefaultCacheSize bounds the query result cache when Config leaves
// CacheSize unset.
const DefaultCacheSize = 256

// Config tunes an Engine. The zero value is usable: every field falls
// back to its default on New.
type Config struct {
	// MaxFeatures caps the vocabulary at the most frequent terms.
	MaxFeatures int

	// MinDF drops terms appearing in fewer than MinDF documents.
	MinDF int

	// MaxDF drops terms appearing in more than MaxDF (a fraction of
	// the corpus) documents.
	MaxDF float64

	// Stopwords replaces the built-in English stopword list.
	Stopwords []string

	// DisableStopwords keeps every token, built-in list included.
	DisableStopwords bool

	// Seed fixes the k-means random source. Runs with equal seeds and
	// corpora produce identical labels.
	Seed int64

	// Restarts is the number of independent k-means runs; the run with
	// the lowest inertia wins.
	Restarts int

	// MaxIterations bounds each k-means run.
	MaxIterations int

	// InitMethod selects k-means seeding, kmeans++ or random.
	InitMethod string

	// CacheSize bounds the query result cache in entries. Zero means
	// DefaultCacheSize; negative disables caching.
	CacheSize int
}

// DefaultConfig returns the settings used by the package-level helpers.
func DefaultConfig() Config {
	return Config{
		MaxFeatures:   vectorize.DefaultMaxFeatures,
		MinDF:         vectorize.DefaultMinDF,
		MaxDF:         vectorize.DefaultMaxDF,
		Seed:          cluster.DefaultSeed,
		Restarts:      cluster.DefaultRestarts,
		MaxIterations: cluster.DefaultMaxIterations,
		InitMethod:    cluster.InitKMeansPlusPlus,
		CacheSize:     DefaultCacheSize,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxFeatures <= 0 {
		c.MaxFeatures = def.MaxFeatures
	}
	if c.MinDF <= 0 {
		c.MinDF = def.MinDF
	}
	if c.MaxDF <= 0 || c.MaxDF > 1 {
		c.MaxDF = def.MaxDF
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	if c.Restarts <= 0 {
		c.Restarts = def.Restarts
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = def.MaxIterations
	}
	if c.InitMethod == "" {
		c.InitMethod = def.InitMethod
	}
	if c.CacheSize == 0 {
		c.CacheSize = def.CacheSize
	}
	return c
}

func (c Config) vectorizeConfig() vectorize.Config {
	return vectorize.Config{
		MaxFeatures:      c.MaxFeatures,
		MinDF:            c.MinDF,
		MaxDF:            c.MaxDF,
		Stopwords:        c.Stopwords,
		DisableStopwords: c.DisableStopwords,
	}
}

func (c Config) clusterConfig() cluster.Config {
	return cluster.Config{
		Seed:          c.Seed,
		Restarts:      c.Restarts,
		MaxIterations: c.MaxIterations,
		InitMethod:    c.InitMethod,
	}
}
