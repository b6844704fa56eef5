package ranking

// Config holds the weights for score fusion. All fields are optional in the
// config file; zero values are replaced by defaults so partial overrides work.
type Config struct {
	// FuzzyBoostWeight scales the bigram similarity boost added to relevance.
	FuzzyBoostWeight float64 `yaml:"fuzzy_boost_weight"` // default: 0.3

	// Business attribute weights
	RatingWeight     float64 `yaml:"rating_weight"`     // default: 0.15
	StockWeight      float64 `yaml:"stock_weight"`      // default: 0.08
	DiscountWeight   float64 `yaml:"discount_weight"`   // default: 0.07
	SalesWeight      float64 `yaml:"sales_weight"`      // default: 0.08
	ReturnRateWeight float64 `yaml:"return_rate_weight"` // default: 0.06
	ComplaintsWeight float64 `yaml:"complaints_weight"` // default: 0.06
	PriceWeight      float64 `yaml:"price_weight"`      // default: 0.05

	// Intent-conditioned bonuses
	LowPriceBonus  float64 `yaml:"low_price_bonus"`  // default: 0.15
	BestRatedBonus float64 `yaml:"best_rated_bonus"` // default: 0.10

	// BusinessWeight scales the business score against relevance.
	BusinessWeight float64 `yaml:"business_weight"` // default: 0.55

	// FallbackPricePenalty is the price penalty in the query-less ranking.
	FallbackPricePenalty float64 `yaml:"fallback_price_penalty"` // default: 0.2
}

// DefaultConfig returns the default ranking configuration.
func DefaultConfig() *Config {
	return &Config{
		FuzzyBoostWeight: 0.3,

		RatingWeight:     0.15,
		StockWeight:      0.08,
		DiscountWeight:   0.07,
		SalesWeight:      0.08,
		ReturnRateWeight: 0.06,
		ComplaintsWeight: 0.06,
		PriceWeight:      0.05,

		LowPriceBonus:  0.15,
		BestRatedBonus: 0.10,

		BusinessWeight: 0.55,

		FallbackPricePenalty: 0.2,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.FuzzyBoostWeight == 0 {
		c.FuzzyBoostWeight = defaults.FuzzyBoostWeight
	}
	if c.RatingWeight == 0 {
		c.RatingWeight = defaults.RatingWeight
	}
	if c.StockWeight == 0 {
		c.StockWeight = defaults.StockWeight
	}
	if c.DiscountWeight == 0 {
		c.DiscountWeight = defaults.DiscountWeight
	}
	if c.SalesWeight == 0 {
		c.SalesWeight = defaults.SalesWeight
	}
	if c.ReturnRateWeight == 0 {
		c.ReturnRateWeight = defaults.ReturnRateWeight
	}
	if c.ComplaintsWeight == 0 {
		c.ComplaintsWeight = defaults.ComplaintsWeight
	}
	if c.PriceWeight == 0 {
		c.PriceWeight = defaults.PriceWeight
	}
	if c.LowPriceBonus == 0 {
		c.LowPriceBonus = defaults.LowPriceBonus
	}
	if c.BestRatedBonus == 0 {
		c.BestRatedBonus = defaults.BestRatedBonus
	}
	if c.BusinessWeight == 0 {
		c.BusinessWeight = defaults.BusinessWeight
	}
	if c.FallbackPricePenalty == 0 {
		c.FallbackPricePenalty = defaults.FallbackPricePenalty
	}
}
