package gold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse/internal/silver"
)

func i32(v int32) *int32 { return &v }

func TestBuildDimProduct_Classifications(t *testing.T) {
	t.Parallel()

	products := []silver.Product{{
		ProductID:     "PROD-1",
		Name:          "Widget",
		Category:      "electronics",
		Price:         f64(149.99),
		Cost:          f64(80),
		MarginPercent: f64(46.67),
		StockQuantity: i32(5),
		IsActive:      true,
	}}

	out := BuildDimProduct(products, testNow())
	require.Len(t, out, 1)
	p := out[0]

	assert.Equal(t, int32(1), p.ProductKey)
	assert.Equal(t, "mid_range", p.PriceTier)
	assert.True(t, p.IsHighMargin)
	assert.Equal(t, "low_stock", p.StockStatus)
	assert.True(t, p.IsCurrent)
	assert.Nil(t, p.EffectiveTo)
}

func TestBuildDimProduct_PriceTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		price *float64
		want  string
	}{
		{f64(500), "premium"},
		{f64(499.99), "mid_range"},
		{f64(100), "mid_range"},
		{f64(99.99), "budget"},
		{f64(25), "budget"},
		{f64(24.99), "economy"},
		{nil, "economy"},
	}
	for _, tc := range cases {
		out := BuildDimProduct([]silver.Product{{ProductID: "PROD-1", Price: tc.price}}, testNow())
		require.Len(t, out, 1)
		assert.Equal(t, tc.want, out[0].PriceTier)
	}
}

func TestBuildDimProduct_StockStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		qty  *int32
		want string
	}{
		{i32(0), "out_of_stock"},
		{i32(9), "low_stock"},
		{i32(10), "normal"},
		{i32(49), "normal"},
		{i32(50), "well_stocked"},
		{nil, "unknown"},
	}
	for _, tc := range cases {
		out := BuildDimProduct([]silver.Product{{ProductID: "PROD-1", StockQuantity: tc.qty}}, testNow())
		require.Len(t, out, 1)
		assert.Equal(t, tc.want, out[0].StockStatus)
	}
}

func TestBuildDimProduct_KeysFollowProductID(t *testing.T) {
	t.Parallel()

	out := BuildDimProduct([]silver.Product{
		{ProductID: "PROD-3"},
		{ProductID: "PROD-1"},
		{ProductID: "PROD-2"},
	}, testNow())
	require.Len(t, out, 3)
	for i, want := range []string{"PROD-1", "PROD-2", "PROD-3"} {
		assert.Equal(t, want, out[i].ProductID)
		assert.Equal(t, int32(i+1), out[i].ProductKey)
	}
}
