package vectorize

// englishStopwords is the built-in filter list, covering the common
// English function words plus contraction stems left over after
// tokenization ("don't" tokenizes to "don"). Config.Stopwords replaces
// the list; single-character words never tokenize and are omitted.
var englishStopwords = []string{
	"about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"cannot", "could", "couldn", "did", "didn", "do", "does", "doesn",
	"doing", "don", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn", "has", "hasn", "have", "haven", "having",
	"he", "her", "here", "hers", "herself", "him", "himself", "his",
	"how", "if", "in", "into", "is", "isn", "it", "its", "itself",
	"just", "ll", "me", "might", "more", "most", "must", "mustn", "my",
	"myself", "no", "nor", "not", "now", "of", "off", "on", "once",
	"only", "or", "other", "our", "ours", "ourselves", "out", "over",
	"own", "re", "same", "shall", "she", "should", "shouldn", "so",
	"some", "such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "ve", "very", "was",
	"wasn", "we", "were", "weren", "what", "when", "where", "which",
	"while", "who", "whom", "why", "will", "with", "won", "would",
	"wouldn", "you", "your", "yours", "yourself", "yourselves",
}

func stopwordSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
