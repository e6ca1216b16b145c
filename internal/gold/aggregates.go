package gold

import (
	"sort"
	"time"
)

// BuildDailySalesSummary groups fact rows by (date_key, shipping_country)
// with distinct order and customer counts, summed measures, and per-order
// ratios. Output is sorted by date key then country, facts without a date
// key grouping first.
func BuildDailySalesSummary(facts []FactSales, now time.Time) []DailySalesSummary {
	type groupKey struct {
		dateKey int32
		hasDate bool
		country string
	}
	type acc struct {
		orders        map[string]struct{}
		customers     map[int32]struct{}
		items         int64
		gross         float64
		net           float64
		profit        float64
		marginSum     float64
		marginSamples int64
	}

	groups := make(map[groupKey]*acc)
	for _, f := range facts {
		k := groupKey{country: f.ShippingCountry}
		if f.DateKey != nil {
			k.dateKey = *f.DateKey
			k.hasDate = true
		}
		a := groups[k]
		if a == nil {
			a = &acc{orders: map[string]struct{}{}, customers: map[int32]struct{}{}}
			groups[k] = a
		}
		a.orders[f.OrderID] = struct{}{}
		a.customers[f.CustomerKey] = struct{}{}
		if f.Quantity != nil {
			a.items += int64(*f.Quantity)
		}
		if f.GrossRevenue != nil {
			a.gross += *f.GrossRevenue
		}
		if f.NetRevenue != nil {
			a.net += *f.NetRevenue
		}
		if f.Profit != nil {
			a.profit += *f.Profit
		}
		a.marginSum += f.ProfitMarginPct
		a.marginSamples++
	}

	out := make([]DailySalesSummary, 0, len(groups))
	for k, a := range groups {
		s := DailySalesSummary{
			ShippingCountry: k.country,
			TotalOrders:     int64(len(a.orders)),
			TotalItemsSold:  a.items,
			GrossRevenue:    round2(a.gross),
			NetRevenue:      round2(a.net),
			TotalProfit:     round2(a.profit),
			UniqueCustomers: int64(len(a.customers)),
			CreatedAt:       now,
		}
		if k.hasDate {
			dk := k.dateKey
			s.DateKey = &dk
		}
		if a.marginSamples > 0 {
			s.AvgProfitMargin = round2(a.marginSum / float64(a.marginSamples))
		}
		if s.TotalOrders > 0 {
			s.AvgOrderValue = round2(s.NetRevenue / float64(s.TotalOrders))
			s.ItemsPerOrder = round2(float64(s.TotalItemsSold) / float64(s.TotalOrders))
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.DateKey == nil) != (b.DateKey == nil) {
			return a.DateKey == nil
		}
		if a.DateKey != nil && *a.DateKey != *b.DateKey {
			return *a.DateKey < *b.DateKey
		}
		return a.ShippingCountry < b.ShippingCountry
	})
	return out
}

// BuildProductPerformance groups fact rows by product, pulling attributes
// from the product dimension via product_key, and ranks products by total
// revenue within each category. Rank ties break on ascending product_id so
// reruns are stable. Output is sorted by category then rank.
func BuildProductPerformance(facts []FactSales, products []DimProduct, now time.Time) []ProductPerformance {
	productByKey := make(map[int32]DimProduct, len(products))
	for _, p := range products {
		productByKey[p.ProductKey] = p
	}

	type acc struct {
		perf       ProductPerformance
		orders     map[string]struct{}
		customers  map[int32]struct{}
		priceSum   float64
		priceCount int64
		discSum    float64
		discCount  int64
	}

	groups := make(map[string]*acc)
	for _, f := range facts {
		p, ok := productByKey[f.ProductKey]
		if !ok {
			continue
		}
		a := groups[p.ProductID]
		if a == nil {
			a = &acc{
				perf: ProductPerformance{
					ProductID:   p.ProductID,
					Name:        p.Name,
					Category:    p.Category,
					Subcategory: p.Subcategory,
					Brand:       p.Brand,
					CreatedAt:   now,
				},
				orders:    map[string]struct{}{},
				customers: map[int32]struct{}{},
			}
			groups[p.ProductID] = a
		}
		a.orders[f.OrderID] = struct{}{}
		a.customers[f.CustomerKey] = struct{}{}
		if f.Quantity != nil {
			a.perf.TotalQuantitySold += int64(*f.Quantity)
		}
		if f.NetRevenue != nil {
			a.perf.TotalRevenue += *f.NetRevenue
		}
		if f.Profit != nil {
			a.perf.TotalProfit += *f.Profit
		}
		if f.UnitPrice != nil {
			a.priceSum += *f.UnitPrice
			a.priceCount++
		}
		if f.DiscountPercent != nil {
			a.discSum += *f.DiscountPercent
			a.discCount++
		}
	}

	out := make([]ProductPerformance, 0, len(groups))
	for _, a := range groups {
		p := a.perf
		p.TotalRevenue = round2(p.TotalRevenue)
		p.TotalProfit = round2(p.TotalProfit)
		p.NumberOfOrders = int64(len(a.orders))
		p.UniqueCustomers = int64(len(a.customers))
		if a.priceCount > 0 {
			p.AvgSellingPrice = round2(a.priceSum / float64(a.priceCount))
		}
		if a.discCount > 0 {
			p.AvgDiscountPct = round2(a.discSum / float64(a.discCount))
		}
		if p.TotalRevenue > 0 {
			p.ProfitMarginPct = round2(p.TotalProfit / p.TotalRevenue * 100)
		}
		out = append(out, p)
	}

	// Rank within category: revenue descending, product_id ascending on ties.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.TotalRevenue != b.TotalRevenue {
			return a.TotalRevenue > b.TotalRevenue
		}
		return a.ProductID < b.ProductID
	})
	rank := int32(0)
	for i := range out {
		if i == 0 || out[i].Category != out[i-1].Category {
			rank = 0
		}
		rank++
		out[i].RevenueRankInCategory = rank
	}
	return out
}
