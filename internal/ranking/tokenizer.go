// Package ranking implements the product ranking pipeline: tokenization,
// per-call TF-IDF weighting, bigram fuzzy matching, attribute normalization,
// and intent-aware score fusion.
package ranking

import "strings"

// minTokenLength is the shortest token kept by the tokenizer.
const minTokenLength = 2

// Tokenize lowercases text and extracts maximal runs of ASCII letters and
// digits, dropping tokens shorter than two characters. Order and duplicates
// are preserved. No stemming, no stopword removal.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	var tokens []string
	start := -1
	for i, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if tok := lower[start:i]; len(tok) >= minTokenLength {
				tokens = append(tokens, tok)
			}
			start = -1
		}
	}
	if start >= 0 {
		if tok := lower[start:]; len(tok) >= minTokenLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
