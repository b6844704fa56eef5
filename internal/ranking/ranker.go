package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/openbasket/khoj/internal/models"
)

const (
	// relevanceFloor keeps products with zero lexical match rankable by
	// business score alone instead of tying at exactly zero.
	relevanceFloor = 0.001
	// relevanceThreshold is the level below which the floor applies.
	relevanceThreshold = 0.01
)

// RankedProduct pairs a product with its computed total score.
type RankedProduct struct {
	Product *models.Product
	Score   float64
}

// Ranker scores and orders a product snapshot against a free-text query.
// A Ranker holds only configuration; every call operates on call-local state,
// so one Ranker is safe for concurrent use.
type Ranker struct {
	config *Config
}

// NewRanker creates a Ranker with the given configuration.
func NewRanker(config *Config) *Ranker {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	return &Ranker{config: config}
}

// Rank orders the product snapshot by total score, descending, with ties
// broken by ascending product ID. An empty (or blank) query falls back to
// the query-less ranking. The full slice is returned; truncation to a result
// limit is the caller's concern (see TopN).
func (r *Ranker) Rank(query string, products []*models.Product) []*RankedProduct {
	if len(products) == 0 {
		return []*RankedProduct{}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return r.rankWithoutQuery(products)
	}

	tokens := Tokenize(query)
	intent := DetectIntent(query)

	docs := make([]string, len(products))
	for i, p := range products {
		docs[i] = BuildDocument(p)
	}
	corpus := NewCorpus(docs)
	rawScores := corpus.Scores(tokens)
	tfidfNorm := MinMaxNormalize(rawScores)
	bounds := ComputeBounds(products)

	results := make([]*RankedProduct, len(products))
	for i, p := range products {
		fuzzy := math.Max(
			DiceSimilarity(query, p.Title),
			DiceSimilarity(query, p.Description),
		) * r.config.FuzzyBoostWeight

		relevance := tfidfNorm[i] + fuzzy
		if relevance < relevanceThreshold && rawScores[i] <= 0 {
			relevance = relevanceFloor
		}

		business := r.businessScore(p, bounds, intent)
		results[i] = &RankedProduct{
			Product: p,
			Score:   relevance + r.config.BusinessWeight*business,
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Product.ProductID < results[j].Product.ProductID
	})
	return results
}

// businessScore computes the weighted sum of normalized business attributes,
// with the intent-conditioned price or rating bonus applied.
func (r *Ranker) businessScore(p *models.Product, b *Bounds, intent Intent) float64 {
	cfg := r.config

	ratingNorm := Normalize(p.Rating, b.RatingMin, b.RatingMax)
	stockNorm := Normalize(float64(p.Stock), b.StockMin, b.StockMax)
	priceNorm := Normalize(p.Price, b.PriceMin, b.PriceMax)
	discountNorm := Normalize(DiscountFraction(p), b.DiscountMin, b.DiscountMax)
	unitsNorm := Normalize(p.UnitsSold, b.UnitsMin, b.UnitsMax)
	// Inverted: lower return rate and fewer complaints are better.
	returnNorm := 1 - Normalize(p.ReturnRate, 0, b.ReturnRateMax)
	complaintsNorm := 1 - Normalize(p.ComplaintsCount, 0, b.ComplaintsMax)

	score := cfg.RatingWeight*ratingNorm +
		cfg.StockWeight*stockNorm +
		cfg.DiscountWeight*discountNorm +
		cfg.SalesWeight*unitsNorm +
		cfg.ReturnRateWeight*returnNorm +
		cfg.ComplaintsWeight*complaintsNorm

	switch intent {
	case IntentLowPrice:
		score += cfg.LowPriceBonus * (1 - priceNorm)
	case IntentBestRated:
		score += cfg.BestRatedBonus * ratingNorm
	default:
		// Includes "latest": no recency signal is available, so the mild
		// price preference applies.
		score += cfg.PriceWeight * (1 - priceNorm)
	}
	return score
}

// rankWithoutQuery orders products by rating * ln(1+stock) minus a small
// price penalty. The sort is stable over the catalog's listing order.
func (r *Ranker) rankWithoutQuery(products []*models.Product) []*RankedProduct {
	var priceMin, priceMax float64
	for i, p := range products {
		if i == 0 {
			priceMin, priceMax = p.Price, p.Price
			continue
		}
		priceMin = min(priceMin, p.Price)
		priceMax = max(priceMax, p.Price)
	}

	results := make([]*RankedProduct, len(products))
	for i, p := range products {
		priceNorm := Normalize(p.Price, priceMin, priceMax)
		results[i] = &RankedProduct{
			Product: p,
			Score:   p.Rating*math.Log1p(float64(p.Stock)) - r.config.FallbackPricePenalty*priceNorm,
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// TopN returns the top n results.
func TopN(results []*RankedProduct, n int) []*RankedProduct {
	if n >= len(results) {
		return results
	}
	return results[:n]
}
