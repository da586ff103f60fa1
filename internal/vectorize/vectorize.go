// Package vectorize builds TF-IDF feature vectors from preference
// texts. The pipeline follows the standard text-vectorizer recipe:
// lowercase word tokens, stopword filtering, unigrams plus bigrams,
// document-frequency pruning, an optional vocabulary cap, smoothed IDF
// weighting and L2 row normalization.
package vectorize

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Defaults for Config fields left at their zero value.
const (
	DefaultMaxFeatures = 1000
	DefaultMinDF       = 1
	DefaultMaxDF       = 0.95
)

// tokenPattern matches word tokens of at least two letters, digits or
// underscores. Single-character words never become terms.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

var (
	// ErrEmptyCorpus is returned when vectorization is attempted on a
	// corpus with no documents.
	ErrEmptyCorpus = errors.New("vectorize: corpus is empty")

	// ErrDegenerateVocabulary is returned when tokenization and the
	// document-frequency bounds leave no usable terms.
	ErrDegenerateVocabulary = errors.New("vectorize: no usable terms in corpus")
)

// Config controls tokenization and vocabulary pruning.
type Config struct {
	// MaxFeatures caps the vocabulary to the terms with the highest
	// corpus-wide counts. Zero or negative uses DefaultMaxFeatures.
	MaxFeatures int
	// MinDF drops terms appearing in fewer than MinDF documents.
	// Zero or negative uses DefaultMinDF.
	MinDF int
	// MaxDF drops terms appearing in more than MaxDF*N documents.
	// Values outside (0, 1] use DefaultMaxDF.
	MaxDF float64
	// Stopwords replaces the built-in English list when non-empty.
	Stopwords []string
	// DisableStopwords turns stopword filtering off entirely.
	DisableStopwords bool
}

// DefaultConfig returns the standard vectorizer settings.
func DefaultConfig() Config {
	return Config{
		MaxFeatures: DefaultMaxFeatures,
		MinDF:       DefaultMinDF,
		MaxDF:       DefaultMaxDF,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxFeatures <= 0 {
		c.MaxFeatures = DefaultMaxFeatures
	}
	if c.MinDF <= 0 {
		c.MinDF = DefaultMinDF
	}
	if c.MaxDF <= 0 || c.MaxDF > 1 {
		c.MaxDF = DefaultMaxDF
	}
	return c
}

// Vocabulary is the ordered term-to-column mapping produced by Fit.
// Terms holds the column order (lexicographic, so identical corpora
// always produce identical orderings); Index is the reverse lookup.
// DocFreq and IDF are per-column statistics.
type Vocabulary struct {
	Terms   []string
	Index   map[string]int
	DocFreq []int
	IDF     []float64
}

// Size returns the number of vocabulary terms (matrix columns).
func (vo *Vocabulary) Size() int { return len(vo.Terms) }

// Result is the output of Fit: the vocabulary and the N x V matrix of
// L2-normalized TF-IDF rows, one per document in input order. Rows for
// documents with no vocabulary terms stay all-zero.
type Result struct {
	Vocabulary *Vocabulary
	Matrix     [][]float64
}

// Vectorizer derives a vocabulary and TF-IDF matrix from a corpus.
type Vectorizer struct {
	cfg       Config
	stopwords map[string]struct{}
}

// New creates a vectorizer. Zero-value Config fields fall back to the
// package defaults.
func New(cfg Config) *Vectorizer {
	cfg = cfg.withDefaults()
	v := &Vectorizer{cfg: cfg}
	switch {
	case cfg.DisableStopwords:
		v.stopwords = map[string]struct{}{}
	case len(cfg.Stopwords) > 0:
		v.stopwords = stopwordSet(cfg.Stopwords)
	default:
		v.stopwords = stopwordSet(englishStopwords)
	}
	return v
}

// Fit builds the vocabulary from the corpus and transforms every
// document into its TF-IDF row. The whole corpus is processed in one
// shot; there is no incremental update path.
func (v *Vectorizer) Fit(docs []string) (*Result, error) {
	n := len(docs)
	if n == 0 {
		return nil, ErrEmptyCorpus
	}

	docTerms := make([][]string, n)
	df := make(map[string]int)
	counts := make(map[string]int)
	for i, doc := range docs {
		terms := v.terms(doc)
		docTerms[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			counts[t]++
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	vocab := v.buildVocabulary(df, counts, n)
	if vocab.Size() == 0 {
		return nil, ErrDegenerateVocabulary
	}

	matrix := make([][]float64, n)
	for i, terms := range docTerms {
		matrix[i] = vocab.vector(terms)
	}
	return &Result{Vocabulary: vocab, Matrix: matrix}, nil
}

// buildVocabulary prunes terms by document frequency, applies the
// MaxFeatures cap and fixes the column order.
func (v *Vectorizer) buildVocabulary(df, counts map[string]int, numDocs int) *Vocabulary {
	minCount := v.cfg.MinDF
	// The upper cutoff never drops below the lower one, so a
	// one-document corpus keeps its terms instead of pruning everything.
	maxCount := v.cfg.MaxDF * float64(numDocs)
	if maxCount < float64(minCount) {
		maxCount = float64(minCount)
	}

	terms := make([]string, 0, len(df))
	for term, d := range df {
		if d < minCount || float64(d) > maxCount {
			continue
		}
		terms = append(terms, term)
	}
	sort.Strings(terms)

	// Cap to the highest-count terms, ties lexicographic, then restore
	// lexicographic column order for the survivors.
	if len(terms) > v.cfg.MaxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			ci, cj := counts[terms[i]], counts[terms[j]]
			if ci != cj {
				return ci > cj
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.cfg.MaxFeatures]
		sort.Strings(terms)
	}

	vocab := &Vocabulary{
		Terms:   terms,
		Index:   make(map[string]int, len(terms)),
		DocFreq: make([]int, len(terms)),
		IDF:     make([]float64, len(terms)),
	}
	nf := float64(numDocs)
	for i, term := range terms {
		vocab.Index[term] = i
		vocab.DocFreq[i] = df[term]
		// Smoothed IDF
		vocab.IDF[i] = math.Log((1+nf)/(1+float64(df[term]))) + 1
	}
	return vocab
}

// vector computes the L2-normalized TF-IDF row for one document's
// term stream.
func (vo *Vocabulary) vector(terms []string) []float64 {
	vec := make([]float64, len(vo.Terms))
	for _, t := range terms {
		if idx, ok := vo.Index[t]; ok {
			vec[idx] += vo.IDF[idx]
		}
	}
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// terms produces the unigram and bigram terms for one document.
// Bigrams are formed over the stopword-filtered token stream, so
// "ready to go" yields the bigram "ready go".
func (v *Vectorizer) terms(text string) []string {
	tokens := v.tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func (v *Vectorizer) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
