package affinity

import (
	"github.com/google/uuid"

	"github.com/affinityhq/affinity/internal/scale"
	"github.com/affinityhq/affinity/internal/similarity"
	"github.com/affinityhq/affinity/internal/vectorize"
	"github.com/affinityhq/affinity/pkg/models"
)

// Snapshot is one fully processed corpus: the people in ingestion
// order, the fitted vocabulary, the z-scored feature matrix and the
// dense cosine matrix, all tagged with a version id. A snapshot never
// mutates after construction; Ingest swaps whole snapshots, so queries
// can read one without holding the engine lock.
type Snapshot struct {
	version  string
	people   []models.Person
	index    map[string]int
	vocab    *vectorize.Vocabulary
	scaler   *scale.Stats
	features [][]float64
	cosine   [][]float64
}

// buildSnapshot runs the whole pipeline over people: TF-IDF
// vectorization, z-score scaling and the pairwise cosine matrix.
func buildSnapshot(people []models.Person, cfg Config) (*Snapshot, error) {
	texts := make([]string, len(people))
	for i, p := range people {
		texts[i] = p.Preferences
	}

	fitted, err := vectorize.New(cfg.vectorizeConfig()).Fit(texts)
	if err != nil {
		return nil, err
	}
	features, scaler := scale.FitTransform(fitted.Matrix)

	index := make(map[string]int, len(people))
	for i, p := range people {
		index[p.Name] = i
	}

	return &Snapshot{
		version:  uuid.NewString(),
		people:   people,
		index:    index,
		vocab:    fitted.Vocabulary,
		scaler:   scaler,
		features: features,
		cosine:   similarity.Matrix(features),
	}, nil
}

// Version returns the snapshot's unique id.
func (s *Snapshot) Version() string { return s.version }

// Len returns the number of people in the corpus.
func (s *Snapshot) Len() int { return len(s.people) }

// row returns the matrix row for name.
func (s *Snapshot) row(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// name returns the person name at row i.
func (s *Snapshot) name(i int) string { return s.people[i].Name }

// Clustering is a partition of one snapshot's corpus. It stays tied to
// the snapshot version it was computed from; re-ingesting leaves it
// behind as stale.
type Clustering struct {
	version string
	method  models.Method
	k       int
	labels  []int
	members map[int][]int
	inertia float64
}

// newClustering indexes labels by cluster id. Member lists keep row
// order because labels are walked in row order.
func newClustering(s *Snapshot, method models.Method, k int, labels []int, inertia float64) *Clustering {
	members := make(map[int][]int, k)
	for row, label := range labels {
		members[label] = append(members[label], row)
	}
	return &Clustering{
		version: s.version,
		method:  method,
		k:       k,
		labels:  labels,
		members: members,
		inertia: inertia,
	}
}
