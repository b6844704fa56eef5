package ranking

import "github.com/openbasket/khoj/internal/models"

// Normalize rescales v into [0,1] relative to [lo, hi]. A degenerate range
// (hi <= lo) carries no information and yields the neutral 0.5.
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// Bounds holds the per-call min/max statistics for the business attributes of
// the current corpus snapshot. Return rate and complaints carry only an upper
// denominator because their normalization is inverted (lower is better) and
// anchored at zero.
type Bounds struct {
	RatingMin, RatingMax     float64
	StockMin, StockMax       float64
	PriceMin, PriceMax       float64
	UnitsMin, UnitsMax       float64
	DiscountMin, DiscountMax float64
	ReturnRateMax            float64
	ComplaintsMax            float64
}

// DiscountFraction returns (mrp - price) / mrp when the reference price is
// positive, else 0.
func DiscountFraction(p *models.Product) float64 {
	mrp := p.ReferencePrice()
	if mrp <= 0 {
		return 0
	}
	return (mrp - p.Price) / mrp
}

// ComputeBounds scans the corpus snapshot once and collects the attribute
// ranges used for normalization. The result is call-local and never cached.
func ComputeBounds(products []*models.Product) *Bounds {
	b := &Bounds{ReturnRateMax: 1, ComplaintsMax: 1}
	for i, p := range products {
		rating := p.Rating
		stock := float64(p.Stock)
		units := p.UnitsSold
		discount := DiscountFraction(p)
		if i == 0 {
			b.RatingMin, b.RatingMax = rating, rating
			b.StockMin, b.StockMax = stock, stock
			b.PriceMin, b.PriceMax = p.Price, p.Price
			b.UnitsMin, b.UnitsMax = units, units
			b.DiscountMin, b.DiscountMax = discount, discount
		} else {
			b.RatingMin = min(b.RatingMin, rating)
			b.RatingMax = max(b.RatingMax, rating)
			b.StockMin = min(b.StockMin, stock)
			b.StockMax = max(b.StockMax, stock)
			b.PriceMin = min(b.PriceMin, p.Price)
			b.PriceMax = max(b.PriceMax, p.Price)
			b.UnitsMin = min(b.UnitsMin, units)
			b.UnitsMax = max(b.UnitsMax, units)
			b.DiscountMin = min(b.DiscountMin, discount)
			b.DiscountMax = max(b.DiscountMax, discount)
		}
		b.ReturnRateMax = max(b.ReturnRateMax, p.ReturnRate)
		b.ComplaintsMax = max(b.ComplaintsMax, p.ComplaintsCount)
	}
	return b
}
