package silver

import (
	"math"
	"strings"
	"time"

	"lakehouse/internal/schema"
)

// totalTolerance is the maximum absolute difference, in currency units,
// between a reported total and the recomputed one before the reconciliation
// flag trips.
const totalTolerance = 0.01

// TransformOrders cleans bronze orders into silver. The order date is split
// into calendar components, status and payment method are lower-cased, and
// the reported total is reconciled against subtotal+tax+shipping-discount.
// Duplicates by order_id keep the latest ingestion.
func TransformOrders(rows []schema.RawOrder, now time.Time) []Order {
	rows = dedupLatest(rows,
		func(r schema.RawOrder) string { return r.OrderID },
		func(r schema.RawOrder) schema.Lineage { return r.Lineage })

	out := make([]Order, 0, len(rows))
	for _, r := range rows {
		o := Order{
			OrderID:         r.OrderID,
			CustomerID:      r.CustomerID,
			OrderDate:       toTime(r.OrderDate),
			Status:          strings.ToLower(strings.TrimSpace(r.Status)),
			PaymentMethod:   strings.ToLower(strings.TrimSpace(r.PaymentMethod)),
			Subtotal:        toFloat(r.Subtotal),
			TaxAmount:       toFloat(r.TaxAmount),
			ShippingAmount:  toFloat(r.ShippingAmount),
			DiscountAmount:  toFloat(r.DiscountAmount),
			TotalAmount:     toFloat(r.TotalAmount),
			Currency:        strings.ToUpper(strings.TrimSpace(r.Currency)),
			ShippingCountry: strings.ToUpper(strings.TrimSpace(r.ShippingCountry)),
			ShippingCity:    strings.TrimSpace(r.ShippingCity),
			Lineage:         r.Lineage,
			ProcessedAt:     now,
		}
		if o.OrderDate != nil {
			t := *o.OrderDate
			o.OrderYear = intPtr(int32(t.Year()))
			o.OrderMonth = intPtr(int32(t.Month()))
			o.OrderDay = intPtr(int32(t.Day()))
			// 1=Sunday through 7=Saturday.
			o.OrderDayOfWeek = intPtr(int32(t.Weekday()) + 1)
			_, week := t.ISOWeek()
			o.OrderWeek = intPtr(int32(week))
		}
		o.CalculatedTotal = calculatedTotal(o.Subtotal, o.TaxAmount, o.ShippingAmount, o.DiscountAmount)
		o.IsTotalValid = withinTolerance(o.TotalAmount, o.CalculatedTotal)
		out = append(out, o)
	}
	return out
}

func intPtr(v int32) *int32 { return &v }

// calculatedTotal recomputes the order total from its parts. A missing
// subtotal makes the recomputation meaningless, so the result is nil; the
// other parts default to zero when absent.
func calculatedTotal(subtotal, tax, shipping, discount *float64) *float64 {
	if subtotal == nil {
		return nil
	}
	t := round2(*subtotal + orZero(tax) + orZero(shipping) - orZero(discount))
	return &t
}

func orZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func withinTolerance(reported, calculated *float64) bool {
	if reported == nil || calculated == nil {
		return false
	}
	return math.Abs(*reported-*calculated) <= totalTolerance
}
