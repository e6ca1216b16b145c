package silver

import (
	"time"

	"lakehouse/internal/schema"
)

// TransformOrderItems cleans bronze order items into silver. The gross
// amount, discount amount, and line total are recomputed from quantity,
// unit price, and discount percent, and the reported line total is
// reconciled against the recomputation. Duplicates by order_item_id keep
// the latest ingestion.
func TransformOrderItems(rows []schema.RawOrderItem, now time.Time) []OrderItem {
	rows = dedupLatest(rows,
		func(r schema.RawOrderItem) string { return r.OrderItemID },
		func(r schema.RawOrderItem) schema.Lineage { return r.Lineage })

	out := make([]OrderItem, 0, len(rows))
	for _, r := range rows {
		it := OrderItem{
			OrderItemID:     r.OrderItemID,
			OrderID:         r.OrderID,
			ProductID:       r.ProductID,
			Quantity:        toInt(r.Quantity),
			UnitPrice:       toFloat(r.UnitPrice),
			DiscountPercent: toFloat(r.DiscountPercent),
			LineTotal:       toFloat(r.LineTotal),
			Lineage:         r.Lineage,
			ProcessedAt:     now,
		}
		if it.Quantity != nil && it.UnitPrice != nil {
			gross := round2(float64(*it.Quantity) * *it.UnitPrice)
			it.GrossAmount = &gross
			discount := round2(gross * orZero(it.DiscountPercent) / 100)
			it.DiscountAmount = &discount
			line := round2(gross - discount)
			it.CalculatedLineTotal = &line
		}
		it.IsLineTotalValid = withinTolerance(it.LineTotal, it.CalculatedLineTotal)
		out = append(out, it)
	}
	return out
}
