package ranking

import "math"

// Corpus is a per-call TF-IDF model over product documents. It is built from
// scratch for every search and never shared between calls.
type Corpus struct {
	termFreqs []map[string]int
	docFreqs  map[string]int
}

// NewCorpus tokenizes each document and builds term and document frequencies.
func NewCorpus(docs []string) *Corpus {
	c := &Corpus{
		termFreqs: make([]map[string]int, len(docs)),
		docFreqs:  make(map[string]int),
	}
	for i, doc := range docs {
		tf := make(map[string]int)
		for _, tok := range Tokenize(doc) {
			tf[tok]++
		}
		c.termFreqs[i] = tf
		for term := range tf {
			c.docFreqs[term]++
		}
	}
	return c
}

// Len returns the number of documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.termFreqs)
}

// IDF returns the inverse document frequency of a term. The smoothed formula
// keeps the value positive, so terms absent from a document contribute
// exactly zero and a raw score of zero means no query token occurred.
func (c *Corpus) IDF(term string) float64 {
	n := float64(len(c.termFreqs))
	df := float64(c.docFreqs[term])
	return 1.0 + math.Log((1.0+n)/(1.0+df))
}

// Scores returns the summed TF-IDF contribution of the query tokens for each
// document: raw(doc) = sum over tokens of tf(token, doc) * idf(token).
// Scores are raw (unnormalized) and non-negative.
func (c *Corpus) Scores(tokens []string) []float64 {
	scores := make([]float64, len(c.termFreqs))
	for _, term := range tokens {
		idf := c.IDF(term)
		for i, tf := range c.termFreqs {
			if count := tf[term]; count > 0 {
				scores[i] += float64(count) * idf
			}
		}
	}
	return scores
}

// MinMaxNormalize rescales scores to [0,1] across the slice. A degenerate
// range (all values equal) carries no information and yields 0.5 everywhere.
func MinMaxNormalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	normalized := make([]float64, len(scores))
	if hi <= lo {
		for i := range normalized {
			normalized[i] = 0.5
		}
		return normalized
	}
	for i, s := range scores {
		normalized[i] = (s - lo) / (hi - lo)
	}
	return normalized
}
