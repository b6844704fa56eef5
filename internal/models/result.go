package models

// SearchResult is the read projection of a Product returned by search.
// Field names follow the public API contract (productId, Sellingprice).
type SearchResult struct {
	ProductID    int64                  `json:"productId"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	MRP          float64                `json:"mrp"`
	SellingPrice float64                `json:"Sellingprice"`
	Metadata     map[string]interface{} `json:"Metadata"`
	Stock        int64                  `json:"stock"`
}

// ToSearchResult projects a product onto its search result shape.
// Ranking internals are deliberately not carried over.
func ToSearchResult(p *Product) *SearchResult {
	meta := p.Metadata
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return &SearchResult{
		ProductID:    p.ProductID,
		Title:        p.Title,
		Description:  p.Description,
		MRP:          p.ReferencePrice(),
		SellingPrice: p.Price,
		Metadata:     meta,
		Stock:        p.Stock,
	}
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Data      []*SearchResult `json:"data"`
	Query     string          `json:"query,omitempty"`
	QueryTime int64           `json:"query_time_ms"`
}
