package gold

import (
	"time"

	"lakehouse/internal/silver"
)

// Product price-tier, margin, and stock thresholds.
const (
	tierPremiumPrice  = 500.0
	tierMidRangePrice = 100.0
	tierBudgetPrice   = 25.0

	highMarginPct = 40.0

	lowStockUnits    = 10
	normalStockUnits = 50
)

// BuildDimProduct classifies silver products into price tiers, margin
// flags, and stock statuses. Surrogate keys follow ascending product_id.
func BuildDimProduct(products []silver.Product, now time.Time) []DimProduct {
	out := make([]DimProduct, 0, len(products))
	for _, p := range products {
		out = append(out, DimProduct{
			ProductID:     p.ProductID,
			SKU:           p.SKU,
			Name:          p.Name,
			Description:   p.Description,
			Brand:         p.Brand,
			Category:      p.Category,
			Subcategory:   p.Subcategory,
			Price:         p.Price,
			Cost:          p.Cost,
			MarginPercent: p.MarginPercent,
			PriceTier:     priceTier(p.Price),
			IsHighMargin:  p.MarginPercent != nil && *p.MarginPercent >= highMarginPct,
			StockQuantity: p.StockQuantity,
			StockStatus:   stockStatus(p.StockQuantity),
			IsActive:      p.IsActive,
			EffectiveFrom: p.CreatedAt,
			IsCurrent:     true,
			CreatedAt:     now,
		})
	}

	assignOrdinals(out,
		func(d DimProduct) string { return d.ProductID },
		func(d *DimProduct, k int32) { d.ProductKey = k })
	return out
}

// priceTier buckets by list price. An unknown price misses every threshold
// and lands in the lowest bucket.
func priceTier(price *float64) string {
	if price != nil {
		switch {
		case *price >= tierPremiumPrice:
			return "premium"
		case *price >= tierMidRangePrice:
			return "mid_range"
		case *price >= tierBudgetPrice:
			return "budget"
		}
	}
	return "economy"
}

func stockStatus(qty *int32) string {
	if qty == nil {
		return "unknown"
	}
	switch {
	case *qty == 0:
		return "out_of_stock"
	case *qty < lowStockUnits:
		return "low_stock"
	case *qty < normalStockUnits:
		return "normal"
	}
	return "well_stocked"
}
