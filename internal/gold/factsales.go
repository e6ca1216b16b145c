package gold

import (
	"time"

	"lakehouse/internal/silver"
)

// OrphanPolicy decides what happens to order items whose customer or
// product has no dimension row. The original dimensional build silently
// dropped them via inner joins, which can shrink fact counts without a
// trace, so the policy is explicit here.
type OrphanPolicy string

const (
	// OrphanDrop excludes unmatched rows, matching an inner join.
	OrphanDrop OrphanPolicy = "drop"
	// OrphanKeep retains unmatched rows with zero dimension keys and the
	// is_dim_orphan flag set.
	OrphanKeep OrphanPolicy = "keep"
)

// BuildFactSales joins order items to their orders and to the customer and
// product dimensions, producing one fact row per order item with derived
// revenue, cost, profit, and pro-rated order-level charges. Items without a
// matching order are always dropped; dimension mismatches follow policy.
// Surrogate keys follow ascending order_item_id.
func BuildFactSales(items []silver.OrderItem, orders []silver.Order, customers []DimCustomer, products []DimProduct, policy OrphanPolicy, now time.Time) []FactSales {
	orderByID := make(map[string]silver.Order, len(orders))
	for _, o := range orders {
		orderByID[o.OrderID] = o
	}
	customerByID := make(map[string]DimCustomer, len(customers))
	for _, c := range customers {
		customerByID[c.CustomerID] = c
	}
	productByID := make(map[string]DimProduct, len(products))
	for _, p := range products {
		productByID[p.ProductID] = p
	}

	out := make([]FactSales, 0, len(items))
	for _, it := range items {
		o, ok := orderByID[it.OrderID]
		if !ok {
			continue
		}
		cust, custOK := customerByID[o.CustomerID]
		prod, prodOK := productByID[it.ProductID]
		if (!custOK || !prodOK) && policy != OrphanKeep {
			continue
		}

		f := FactSales{
			OrderID:         it.OrderID,
			OrderItemID:     it.OrderItemID,
			OrderDate:       o.OrderDate,
			Status:          o.Status,
			PaymentMethod:   o.PaymentMethod,
			ShippingCountry: o.ShippingCountry,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			DiscountAmount:  it.DiscountAmount,
			NetRevenue:      it.LineTotal,
			IsDimOrphan:     !custOK || !prodOK,
			CreatedAt:       now,
		}
		if custOK {
			f.CustomerKey = cust.CustomerKey
		}
		if prodOK {
			f.ProductKey = prod.ProductKey
		}
		if o.OrderDate != nil {
			y, m, d := o.OrderDate.Date()
			key := int32(y*10000 + int(m)*100 + d)
			f.DateKey = &key
		}
		if it.Quantity != nil && it.UnitPrice != nil {
			gross := round2(float64(*it.Quantity) * *it.UnitPrice)
			f.GrossRevenue = &gross
		}
		if prodOK && it.Quantity != nil && prod.Cost != nil {
			cogs := round2(float64(*it.Quantity) * *prod.Cost)
			f.CostOfGoods = &cogs
		}
		if f.NetRevenue != nil && f.CostOfGoods != nil {
			profit := round2(*f.NetRevenue - *f.CostOfGoods)
			f.Profit = &profit
		}
		if f.NetRevenue != nil && *f.NetRevenue > 0 && f.Profit != nil {
			f.ProfitMarginPct = round2(*f.Profit / *f.NetRevenue * 100)
		}
		f.AllocatedTax = allocate(o.TaxAmount, it.LineTotal, o.Subtotal)
		f.AllocatedShipping = allocate(o.ShippingAmount, it.LineTotal, o.Subtotal)

		out = append(out, f)
	}

	assignOrdinals(out,
		func(f FactSales) string { return f.OrderItemID },
		func(f *FactSales, k int32) { f.SaleKey = k })
	return out
}

// allocate distributes an order-level amount across line items by each
// line's share of the subtotal. A missing or zero subtotal makes the share
// undefined, which allocates as zero rather than faulting.
func allocate(amount, lineTotal, subtotal *float64) *float64 {
	if amount == nil || lineTotal == nil {
		return nil
	}
	v := 0.0
	if subtotal != nil && *subtotal != 0 {
		v = round2(*amount * *lineTotal / *subtotal)
	}
	return &v
}
