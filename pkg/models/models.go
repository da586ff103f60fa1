// Package models contains domain models for affinity.
package models

// Method identifies a clustering algorithm.
type Method string

const (
	MethodKMeans       Method = "kmeans"
	MethodHierarchical Method = "hierarchical"
)

// AllMethods lists every supported clustering method.
var AllMethods = []Method{MethodKMeans, MethodHierarchical}

// Valid reports whether m names a supported clustering method.
func (m Method) Valid() bool {
	switch m {
	case MethodKMeans, MethodHierarchical:
		return true
	}
	return false
}

// Person is a named free-text preference document. Name is an exact,
// case-sensitive key within a corpus.
type Person struct {
	Name        string `json:"name"`
	Preferences string `json:"preferences"`
}

// Neighbor is one entry of a nearest-neighbour query result.
type Neighbor struct {
	Name  string  `json:"name"`
	Score float64 `json:"similarity"`
}

// Pair is an unordered pair of people ranked by mutual similarity.
// First always precedes Second in ingestion order.
type Pair struct {
	First  string  `json:"person1"`
	Second string  `json:"person2"`
	Score  float64 `json:"similarity"`
}

// TermWeight is a vocabulary term with its importance weight.
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Point is a person's position in the 2-D projection of the feature
// space, with the cluster it belongs to.
type Point struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Cluster int     `json:"cluster"`
}

// Stats summarizes the engine state at a point in time.
type Stats struct {
	People         int    `json:"num_people"`
	VocabularySize int    `json:"vocabulary_size"`
	Clustered      bool   `json:"has_clusters"`
	NumClusters    int    `json:"num_clusters"`
	Method         Method `json:"cluster_method,omitempty"`
	Version        string `json:"version,omitempty"`
}
