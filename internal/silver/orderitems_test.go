package silver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse/internal/schema"
)

func TestTransformOrderItems_Derivations(t *testing.T) {
	t.Parallel()

	out := TransformOrderItems([]schema.RawOrderItem{{
		OrderItemID:     "ITEM-1",
		OrderID:         "ORD-1",
		ProductID:       "PROD-1",
		Quantity:        "3",
		UnitPrice:       "19.99",
		DiscountPercent: "10",
		LineTotal:       "53.97",
	}}, testNow())
	require.Len(t, out, 1)
	it := out[0]

	require.NotNil(t, it.GrossAmount)
	assert.InDelta(t, 59.97, *it.GrossAmount, 0.001)
	require.NotNil(t, it.DiscountAmount)
	assert.InDelta(t, 6.0, *it.DiscountAmount, 0.001)
	require.NotNil(t, it.CalculatedLineTotal)
	assert.InDelta(t, 53.97, *it.CalculatedLineTotal, 0.001)
	assert.True(t, it.IsLineTotalValid)
}

func TestTransformOrderItems_NoDiscount(t *testing.T) {
	t.Parallel()

	out := TransformOrderItems([]schema.RawOrderItem{{
		OrderItemID: "ITEM-1",
		Quantity:    "2",
		UnitPrice:   "10.00",
		LineTotal:   "20.00",
	}}, testNow())
	require.Len(t, out, 1)
	require.NotNil(t, out[0].DiscountAmount)
	assert.Equal(t, 0.0, *out[0].DiscountAmount)
	assert.True(t, out[0].IsLineTotalValid)
}

func TestTransformOrderItems_MissingInputs(t *testing.T) {
	t.Parallel()

	out := TransformOrderItems([]schema.RawOrderItem{{
		OrderItemID: "ITEM-1",
		Quantity:    "",
		UnitPrice:   "10.00",
		LineTotal:   "20.00",
	}}, testNow())
	require.Len(t, out, 1)
	assert.Nil(t, out[0].GrossAmount)
	assert.Nil(t, out[0].CalculatedLineTotal)
	assert.False(t, out[0].IsLineTotalValid)
}

func TestTransformOrderItems_MismatchedLineTotal(t *testing.T) {
	t.Parallel()

	out := TransformOrderItems([]schema.RawOrderItem{{
		OrderItemID: "ITEM-1",
		Quantity:    "2",
		UnitPrice:   "10.00",
		LineTotal:   "25.00",
	}}, testNow())
	require.Len(t, out, 1)
	assert.False(t, out[0].IsLineTotalValid)
}
