package ranking

import "strings"

// DiceSimilarity returns the Sørensen–Dice coefficient over character bigrams
// of two strings. Comparison is case-insensitive and ignores whitespace.
// Identical strings score 1; strings with fewer than two remaining characters
// score 0. This is a pure function with no side effects.
func DiceSimilarity(a, b string) float64 {
	a = stripWhitespace(strings.ToLower(a))
	b = stripWhitespace(strings.ToLower(b))
	if a == b {
		if len(a) == 0 {
			return 0
		}
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigramsA := countBigrams(a)
	var intersection int
	for i := 0; i+2 <= len(b); i++ {
		bg := b[i : i+2]
		if bigramsA[bg] > 0 {
			bigramsA[bg]--
			intersection++
		}
	}
	totalA := len(a) - 1
	totalB := len(b) - 1
	return 2.0 * float64(intersection) / float64(totalA+totalB)
}

func countBigrams(s string) map[string]int {
	bigrams := make(map[string]int, len(s))
	for i := 0; i+2 <= len(s); i++ {
		bigrams[s[i:i+2]]++
	}
	return bigrams
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
