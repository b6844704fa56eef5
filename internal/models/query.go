package models

// SearchQuery represents a product search request. An empty query is valid
// and triggers the query-less fallback ranking.
type SearchQuery struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// Normalize clamps the limit into [1, maxLimit], using defaultLimit when the
// limit is unset or invalid.
func (q *SearchQuery) Normalize(defaultLimit, maxLimit int) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
}
