package silver

import (
	"strings"
	"time"

	"lakehouse/internal/schema"
)

const defaultDescription = "No description available"

// TransformProducts cleans bronze products into silver. SKUs are
// upper-cased, categories lower-cased, a blank description gets a default,
// and the margin percent is derived from price and cost. Duplicates by
// product_id keep the latest ingestion.
func TransformProducts(rows []schema.RawProduct, now time.Time) []Product {
	rows = dedupLatest(rows,
		func(r schema.RawProduct) string { return r.ProductID },
		func(r schema.RawProduct) schema.Lineage { return r.Lineage })

	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		p := Product{
			ProductID:     r.ProductID,
			SKU:           strings.ToUpper(strings.TrimSpace(r.SKU)),
			Name:          strings.TrimSpace(r.Name),
			Description:   strings.TrimSpace(r.Description),
			Category:      strings.ToLower(strings.TrimSpace(r.Category)),
			Subcategory:   strings.TrimSpace(r.Subcategory),
			Brand:         strings.TrimSpace(r.Brand),
			Price:         toFloat(r.Price),
			Cost:          toFloat(r.Cost),
			StockQuantity: toInt(r.StockQuantity),
			IsActive:      toBool(r.IsActive),
			CreatedAt:     toTime(r.CreatedAt),
			Lineage:       r.Lineage,
			ProcessedAt:   now,
		}
		if p.Description == "" {
			p.Description = defaultDescription
		}
		p.MarginPercent = marginPercent(p.Price, p.Cost)
		out = append(out, p)
	}
	return out
}

// marginPercent is (price-cost)/price*100 rounded to cents, nil when either
// input is missing, and 0 for a non-positive price.
func marginPercent(price, cost *float64) *float64 {
	if price == nil || cost == nil {
		return nil
	}
	m := 0.0
	if *price > 0 {
		m = round2((*price - *cost) / *price * 100)
	}
	return &m
}
