package affinity

import (
	"errors"

	"github.com/affinityhq/affinity/internal/cluster"
	"github.com/affinityhq/affinity/internal/vectorize"
)

// Sentinel errors returned by Engine operations. Call sites wrap them
// with context; match with errors.Is.
var (
	// ErrEmptyCorpus is returned by Ingest when the corpus holds no
	// people.
	ErrEmptyCorpus = vectorize.ErrEmptyCorpus

	// ErrDegenerateVocabulary is returned by Ingest when tokenization
	// and the document-frequency bounds leave no usable terms.
	ErrDegenerateVocabulary = vectorize.ErrDegenerateVocabulary

	// ErrInvalidMethod is returned by Cluster for a method other than
	// kmeans or hierarchical.
	ErrInvalidMethod = cluster.ErrInvalidMethod

	// ErrInvalidClusterCount is returned by Cluster when the requested
	// count is below 1 or above the corpus size.
	ErrInvalidClusterCount = cluster.ErrInvalidClusterCount

	// ErrNotIngested is returned by queries issued before the first
	// successful Ingest.
	ErrNotIngested = errors.New("affinity: no corpus ingested")

	// ErrPersonNotFound is returned when a queried name is not part of
	// the current corpus.
	ErrPersonNotFound = errors.New("affinity: person not found")

	// ErrClusteringNotPerformed is returned by cluster queries when no
	// clustering exists for the current corpus snapshot. Re-ingesting
	// invalidates earlier clusterings, so this also covers stale ids.
	ErrClusteringNotPerformed = errors.New("affinity: clustering not performed for current corpus")
)
