package gold

import (
	"time"

	"lakehouse/internal/silver"
)

// Customer value-tier spend thresholds and status day thresholds.
const (
	tierPlatinumSpend = 1000.0
	tierGoldSpend     = 500.0
	tierSilverSpend   = 100.0

	statusChurnedDays = 365
	statusAtRiskDays  = 90
)

// customerMetrics accumulates per-customer order aggregates for the
// dimension's left join.
type customerMetrics struct {
	totalOrders    int64
	totalSpend     float64
	spendCount     int64
	firstOrderDate *time.Time
	lastOrderDate  *time.Time
}

// BuildDimCustomer joins silver customers with per-customer order
// aggregates. Customers without orders keep zeroed counts and null dates
// and classify as prospects. Surrogate keys follow ascending customer_id.
func BuildDimCustomer(customers []silver.Customer, orders []silver.Order, now time.Time) []DimCustomer {
	metrics := make(map[string]*customerMetrics)
	for _, o := range orders {
		m := metrics[o.CustomerID]
		if m == nil {
			m = &customerMetrics{}
			metrics[o.CustomerID] = m
		}
		m.totalOrders++
		if o.TotalAmount != nil {
			m.totalSpend += *o.TotalAmount
			m.spendCount++
		}
		if o.OrderDate != nil {
			if m.firstOrderDate == nil || o.OrderDate.Before(*m.firstOrderDate) {
				t := *o.OrderDate
				m.firstOrderDate = &t
			}
			if m.lastOrderDate == nil || o.OrderDate.After(*m.lastOrderDate) {
				t := *o.OrderDate
				m.lastOrderDate = &t
			}
		}
	}

	out := make([]DimCustomer, 0, len(customers))
	for _, c := range customers {
		d := DimCustomer{
			CustomerID:    c.CustomerID,
			Email:         c.Email,
			FullName:      c.FullName,
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			Phone:         c.Phone,
			Country:       c.Country,
			City:          c.City,
			Segment:       c.Segment,
			IsValidEmail:  c.IsValidEmail,
			EffectiveFrom: c.CreatedAt,
			IsCurrent:     true,
			CreatedAt:     now,
		}
		m := metrics[c.CustomerID]
		if m != nil {
			d.TotalOrders = m.totalOrders
			d.TotalSpend = m.totalSpend
			d.FirstOrderDate = m.firstOrderDate
			d.LastOrderDate = m.lastOrderDate
			if m.spendCount > 0 {
				avg := m.totalSpend / float64(m.spendCount)
				d.AvgOrderValue = &avg
			}
			if m.lastOrderDate != nil {
				days := daysBetween(now, *m.lastOrderDate)
				d.DaysSinceLastOrder = &days
			}
		}
		d.ValueTier = valueTier(m)
		d.CustomerStatus = customerStatus(m, d.DaysSinceLastOrder)
		out = append(out, d)
	}

	assignOrdinals(out,
		func(d DimCustomer) string { return d.CustomerID },
		func(d *DimCustomer, k int32) { d.CustomerKey = k })
	return out
}

func valueTier(m *customerMetrics) string {
	if m != nil {
		switch {
		case m.totalSpend >= tierPlatinumSpend:
			return "platinum"
		case m.totalSpend >= tierGoldSpend:
			return "gold"
		case m.totalSpend >= tierSilverSpend:
			return "silver"
		}
	}
	return "bronze"
}

// customerStatus classifies churn risk. A customer with orders but no
// parseable order date has an unknown recency and stays active.
func customerStatus(m *customerMetrics, daysSinceLast *int32) string {
	if m == nil {
		return "prospect"
	}
	if daysSinceLast != nil {
		if *daysSinceLast > statusChurnedDays {
			return "churned"
		}
		if *daysSinceLast > statusAtRiskDays {
			return "at_risk"
		}
	}
	return "active"
}
