// Package affinity matches people by the similarity of their free-text
// preferences. An Engine ingests a corpus, builds TF-IDF features,
// z-scores them and precomputes the dense cosine matrix; queries then
// rank neighbours and pairs, partition the corpus with k-means or
// agglomerative clustering, surface discriminative vocabulary terms
// and project the corpus to 2-D for plotting.
//
// Every ingest produces an immutable versioned snapshot. Derived
// artifacts carry the version they were computed from, so a clustering
// of a previous corpus is never served against a new one. Query
// results are memoized per version in a bounded LRU cache with
// singleflight coalescing for concurrent misses.
package affinity

import (
	"fmt"
	"hash/fnv"
	"slices"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/affinityhq/affinity/internal/cluster"
	"github.com/affinityhq/affinity/internal/project"
	"github.com/affinityhq/affinity/internal/scale"
	"github.com/affinityhq/affinity/internal/similarity"
	"github.com/affinityhq/affinity/pkg/models"
)

// Engine answers similarity and clustering queries over the most
// recently ingested corpus. All methods are safe for concurrent use;
// queries read an immutable snapshot and never block ingestion.
type Engine struct {
	cfg Config

	mu       sync.RWMutex
	snap     *Snapshot
	grouping *Clustering

	queries singleflight.Group
	cache   *lru.Cache[string, any]

	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	cacheEvictions atomic.Int64
}

// New creates an engine with no corpus. Zero-value Config fields take
// their defaults.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{cfg: cfg}
	if cfg.CacheSize > 0 {
		// lru.NewWithEvict only fails on a non-positive size.
		e.cache, _ = lru.NewWithEvict[string, any](cfg.CacheSize, func(string, any) {
			e.cacheEvictions.Add(1)
		})
	}
	return e
}

// Ingest replaces the corpus with prefs, keyed by person name. Names
// are taken in sorted order, so equal maps always produce the same
// corpus. Any previous corpus and clustering are discarded; on error
// the engine keeps its old state.
func (e *Engine) Ingest(prefs map[string]string) error {
	names := make([]string, 0, len(prefs))
	for name := range prefs {
		names = append(names, name)
	}
	sort.Strings(names)

	people := make([]models.Person, len(names))
	for i, name := range names {
		people[i] = models.Person{Name: name, Preferences: prefs[name]}
	}
	return e.IngestPeople(people)
}

// IngestPeople is Ingest with explicit ordering: people keep their
// slice positions, and a repeated name keeps its first position with
// the last preferences text.
func (e *Engine) IngestPeople(people []models.Person) error {
	deduped := make([]models.Person, 0, len(people))
	seen := make(map[string]int, len(people))
	for _, p := range people {
		if at, ok := seen[p.Name]; ok {
			deduped[at].Preferences = p.Preferences
			continue
		}
		seen[p.Name] = len(deduped)
		deduped = append(deduped, p)
	}

	snap, err := buildSnapshot(deduped, e.cfg)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.snap = snap
	e.grouping = nil
	e.mu.Unlock()
	return nil
}

// Cluster partitions the current corpus into k groups and stores the
// result for member and layout queries. The returned map is name to
// cluster id; ids run contiguously from 0 in ingestion order of first
// appearance.
func (e *Engine) Cluster(k int, method models.Method) (map[string]int, error) {
	snap := e.snapshot()
	if snap == nil {
		return nil, ErrNotIngested
	}

	res, err := cluster.Partition(snap.features, k, method, e.cfg.clusterConfig())
	if err != nil {
		return nil, err
	}
	grouping := newClustering(snap, method, res.K, res.Labels, res.Inertia)

	e.mu.Lock()
	if e.snap != snap {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: corpus replaced during clustering", ErrClusteringNotPerformed)
	}
	e.grouping = grouping
	e.mu.Unlock()

	out := make(map[string]int, len(res.Labels))
	for row, label := range res.Labels {
		out[snap.name(row)] = label
	}
	return out, nil
}

// SimilarTo returns the k people most similar to name, descending by
// cosine similarity. Equal scores keep ingestion order. A corpus of
// one person has no neighbours, so the result is empty.
func (e *Engine) SimilarTo(name string, k int) ([]models.Neighbor, error) {
	snap := e.snapshot()
	if snap == nil {
		return nil, ErrNotIngested
	}
	row, ok := snap.row(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPersonNotFound, name)
	}

	key := queryKey(snap.version, "similar", name, strconv.Itoa(k))
	return cachedQuery(e, key, func() ([]models.Neighbor, error) {
		ranked := similarity.TopNeighbors(snap.cosine, row, k)
		out := make([]models.Neighbor, len(ranked))
		for i, nb := range ranked {
			out[i] = models.Neighbor{Name: snap.name(nb.Index), Score: nb.Score}
		}
		return out, nil
	})
}

// TopPairs returns the k most similar unordered pairs across the whole
// corpus, descending. Each pair lists the earlier-ingested person
// first; equal scores keep pair order.
func (e *Engine) TopPairs(k int) ([]models.Pair, error) {
	snap := e.snapshot()
	if snap == nil {
		return nil, ErrNotIngested
	}

	key := queryKey(snap.version, "pairs", strconv.Itoa(k))
	return cachedQuery(e, key, func() ([]models.Pair, error) {
		ranked := similarity.TopPairs(snap.cosine, k)
		out := make([]models.Pair, len(ranked))
		for i, p := range ranked {
			out[i] = models.Pair{First: snap.name(p.I), Second: snap.name(p.J), Score: p.Score}
		}
		return out, nil
	})
}

// ClusterMembers returns the names in cluster id, in ingestion order.
// Ids outside the stored clustering yield an empty slice, not an
// error.
func (e *Engine) ClusterMembers(id int) ([]string, error) {
	snap, grouping := e.state()
	if snap == nil {
		return nil, ErrNotIngested
	}
	if grouping == nil || grouping.version != snap.version {
		return nil, ErrClusteringNotPerformed
	}

	rows := grouping.members[id]
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = snap.name(row)
	}
	return out, nil
}

// FeatureImportance ranks vocabulary terms by how much they spread
// people apart, measured as the standard deviation of each scaled
// column. Equal weights keep vocabulary order. Returns min(n, V)
// terms; n <= 0 yields an empty result.
func (e *Engine) FeatureImportance(n int) ([]models.TermWeight, error) {
	snap := e.snapshot()
	if snap == nil {
		return nil, ErrNotIngested
	}
	if n <= 0 {
		return []models.TermWeight{}, nil
	}

	key := queryKey(snap.version, "features", strconv.Itoa(n))
	return cachedQuery(e, key, func() ([]models.TermWeight, error) {
		spread := scale.ColumnStd(snap.features)
		order := make([]int, len(spread))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return spread[order[a]] > spread[order[b]]
		})
		if n < len(order) {
			order = order[:n]
		}
		out := make([]models.TermWeight, len(order))
		for i, col := range order {
			out[i] = models.TermWeight{Term: snap.vocab.Terms[col], Weight: spread[col]}
		}
		return out, nil
	})
}

// Layout projects the corpus onto its two leading principal components
// for plotting, one point per person tagged with its cluster id.
// Requires a clustering for the current corpus.
func (e *Engine) Layout() ([]models.Point, error) {
	snap, grouping := e.state()
	if snap == nil {
		return nil, ErrNotIngested
	}
	if grouping == nil || grouping.version != snap.version {
		return nil, ErrClusteringNotPerformed
	}

	key := queryKey(snap.version, "layout", string(grouping.method), strconv.Itoa(grouping.k))
	return cachedQuery(e, key, func() ([]models.Point, error) {
		coords := project.PCA2(snap.features)
		out := make([]models.Point, len(coords))
		for i, c := range coords {
			out[i] = models.Point{
				Name:    snap.name(i),
				X:       c[0],
				Y:       c[1],
				Cluster: grouping.labels[i],
			}
		}
		return out, nil
	})
}

// People lists the corpus in ingestion order.
func (e *Engine) People() ([]models.Person, error) {
	snap := e.snapshot()
	if snap == nil {
		return nil, ErrNotIngested
	}
	return slices.Clone(snap.people), nil
}

// Stats reports corpus and clustering counters. Unlike the query
// methods it never fails; an empty engine reports zeros.
func (e *Engine) Stats() models.Stats {
	snap, grouping := e.state()
	if snap == nil {
		return models.Stats{}
	}
	st := models.Stats{
		People:         snap.Len(),
		VocabularySize: snap.vocab.Size(),
		Version:        snap.version,
	}
	if grouping != nil && grouping.version == snap.version {
		st.Clustered = true
		st.NumClusters = grouping.k
		st.Method = grouping.method
	}
	return st
}

// Version returns the current corpus version, or "" before the first
// ingest. Every successful Ingest produces a fresh version.
func (e *Engine) Version() string {
	if snap := e.snapshot(); snap != nil {
		return snap.version
	}
	return ""
}

// CacheStats is a point-in-time view of the query cache counters.
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
}

// CacheStats returns the cache hit, miss and eviction counters and the
// live entry count.
func (e *Engine) CacheStats() CacheStats {
	st := CacheStats{
		Hits:      e.cacheHits.Load(),
		Misses:    e.cacheMisses.Load(),
		Evictions: e.cacheEvictions.Load(),
	}
	if e.cache != nil {
		st.Entries = e.cache.Len()
	}
	return st
}

func (e *Engine) snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

func (e *Engine) state() (*Snapshot, *Clustering) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap, e.grouping
}

// cachedQuery memoizes compute under key, coalescing concurrent misses
// for the same key. Results are handed back as copies so callers can
// reorder or truncate them without poisoning the cache.
func cachedQuery[T any](e *Engine, key string, compute func() ([]T, error)) ([]T, error) {
	if e.cache == nil {
		return compute()
	}
	if v, ok := e.cache.Get(key); ok {
		e.cacheHits.Add(1)
		return slices.Clone(v.([]T)), nil
	}
	e.cacheMisses.Add(1)

	v, err, _ := e.queries.Do(key, func() (any, error) {
		res, err := compute()
		if err != nil {
			return nil, err
		}
		e.cache.Add(key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]T)), nil
}

// queryKey hashes the corpus version, operation and arguments into a
// compact cache key. Keys embed the version, so entries from replaced
// corpora can never be served; they just age out of the LRU.
func queryKey(version, op string, args ...string) string {
	h := fnv.New64a()
	h.Write([]byte(version))
	h.Write([]byte{'|'})
	h.Write([]byte(op))
	for _, a := range args {
		h.Write([]byte{'|'})
		h.Write([]byte(a))
	}
	return strconv.FormatUint(h.Sum64(), 36)
}
