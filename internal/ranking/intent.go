package ranking

import "strings"

// Intent is a coarse query classification that reweights the business score.
type Intent int

const (
	// IntentNone indicates no intent keyword was found.
	IntentNone Intent = iota
	// IntentLowPrice favors cheaper products.
	IntentLowPrice
	// IntentLatest indicates the user asked for new arrivals.
	IntentLatest
	// IntentBestRated favors highly rated products.
	IntentBestRated
)

// String returns a string representation of the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentLowPrice:
		return "low_price"
	case IntentLatest:
		return "latest"
	case IntentBestRated:
		return "best_rated"
	default:
		return "unknown"
	}
}

var (
	lowPriceKeywords  = []string{"sasta", "cheap", "sabse sasta", "kam daam", "affordable", "budget"}
	latestKeywords    = []string{"latest", "new", "naya", "newest"}
	bestRatedKeywords = []string{"best", "accha", "top"}
)

// DetectIntent returns the first matching intent category for the query.
// Categories are checked in priority order (low-price, latest, best-rated),
// so at most one intent is active per query.
func DetectIntent(query string) Intent {
	q := strings.ToLower(query)
	if containsAny(q, lowPriceKeywords) {
		return IntentLowPrice
	}
	if containsAny(q, latestKeywords) {
		return IntentLatest
	}
	if containsAny(q, bestRatedKeywords) {
		return IntentBestRated
	}
	return IntentNone
}

func containsAny(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
