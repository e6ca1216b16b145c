package gold

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse/internal/silver"
)

func testNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func f64(v float64) *float64 { return &v }

func tm(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBuildDimCustomer_MetricsAndKeys(t *testing.T) {
	t.Parallel()

	customers := []silver.Customer{
		{CustomerID: "CUST-2", Email: "b@example.com", Segment: "regular"},
		{CustomerID: "CUST-1", Email: "a@example.com", Segment: "new"},
	}
	orders := []silver.Order{
		{OrderID: "ORD-1", CustomerID: "CUST-1", TotalAmount: f64(600), OrderDate: tm("2024-06-01T00:00:00")},
		{OrderID: "ORD-2", CustomerID: "CUST-1", TotalAmount: f64(600), OrderDate: tm("2024-06-10T00:00:00")},
	}

	out := BuildDimCustomer(customers, orders, testNow())
	require.Len(t, out, 2)

	// Keys follow ascending customer_id regardless of input order.
	assert.Equal(t, "CUST-1", out[0].CustomerID)
	assert.Equal(t, int32(1), out[0].CustomerKey)
	assert.Equal(t, "CUST-2", out[1].CustomerID)
	assert.Equal(t, int32(2), out[1].CustomerKey)

	c1 := out[0]
	assert.Equal(t, int64(2), c1.TotalOrders)
	assert.Equal(t, 1200.0, c1.TotalSpend)
	require.NotNil(t, c1.AvgOrderValue)
	assert.Equal(t, 600.0, *c1.AvgOrderValue)
	require.NotNil(t, c1.FirstOrderDate)
	assert.Equal(t, *tm("2024-06-01T00:00:00"), *c1.FirstOrderDate)
	require.NotNil(t, c1.DaysSinceLastOrder)
	assert.Equal(t, int32(5), *c1.DaysSinceLastOrder)
	assert.Equal(t, "platinum", c1.ValueTier)
	assert.Equal(t, "active", c1.CustomerStatus)
	assert.True(t, c1.IsCurrent)

	// No orders: zeroed metrics, prospect, bronze.
	c2 := out[1]
	assert.Equal(t, int64(0), c2.TotalOrders)
	assert.Equal(t, 0.0, c2.TotalSpend)
	assert.Nil(t, c2.AvgOrderValue)
	assert.Nil(t, c2.LastOrderDate)
	assert.Equal(t, "bronze", c2.ValueTier)
	assert.Equal(t, "prospect", c2.CustomerStatus)
}

func TestBuildDimCustomer_StatusThresholds(t *testing.T) {
	t.Parallel()

	now := testNow()
	cases := []struct {
		name      string
		lastOrder string
		want      string
	}{
		{"recent", "2024-06-01T00:00:00", "active"},
		{"exactly 90 days", "2024-03-17T00:00:00", "active"},
		{"over 90 days", "2024-03-01T00:00:00", "at_risk"},
		{"over a year", "2023-01-01T00:00:00", "churned"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := BuildDimCustomer(
				[]silver.Customer{{CustomerID: "CUST-1"}},
				[]silver.Order{{OrderID: "ORD-1", CustomerID: "CUST-1", OrderDate: tm(tc.lastOrder)}},
				now)
			require.Len(t, out, 1)
			assert.Equal(t, tc.want, out[0].CustomerStatus)
		})
	}
}

func TestBuildDimCustomer_ValueTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		spend float64
		want  string
	}{
		{1000, "platinum"},
		{999.99, "gold"},
		{500, "gold"},
		{499.99, "silver"},
		{100, "silver"},
		{99.99, "bronze"},
	}
	for _, tc := range cases {
		out := BuildDimCustomer(
			[]silver.Customer{{CustomerID: "CUST-1"}},
			[]silver.Order{{OrderID: "ORD-1", CustomerID: "CUST-1", TotalAmount: f64(tc.spend)}},
			testNow())
		require.Len(t, out, 1)
		assert.Equal(t, tc.want, out[0].ValueTier, "spend %v", tc.spend)
	}
}
