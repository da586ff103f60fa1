package affinity

import "github.com/affinityhq/affinity/pkg/models"

// SimilarPeople is the one-shot form of Engine.SimilarTo: ingest
// corpus with default settings and return the k people most similar
// to name.
func SimilarPeople(corpus map[string]string, name string, k int) ([]models.Neighbor, error) {
	e := New(DefaultConfig())
	if err := e.Ingest(corpus); err != nil {
		return nil, err
	}
	return e.SimilarTo(name, k)
}

// ClusterPeople is the one-shot form of Engine.Cluster: ingest corpus
// with default settings and k-means it into k groups.
func ClusterPeople(corpus map[string]string, k int) (map[string]int, error) {
	e := New(DefaultConfig())
	if err := e.Ingest(corpus); err != nil {
		return nil, err
	}
	return e.Cluster(k, models.MethodKMeans)
}
