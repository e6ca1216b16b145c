package quality

import (
	"lakehouse/internal/gold"
	"lakehouse/internal/silver"
)

// OrderStatuses are the accepted order states.
var OrderStatuses = []string{"pending", "confirmed", "shipped", "delivered", "cancelled", "returned"}

// Pre-built suites wire the standard checks per table. They are
// configuration over the check library, not new logic.

func ValidateCustomers(rows []silver.Customer) *Validator[silver.Customer] {
	v := NewValidator("customers", rows)

	v.CheckNotNull("customer_id", func(c silver.Customer) bool { return c.CustomerID == "" }, SeverityError)
	v.CheckNotNull("email", func(c silver.Customer) bool { return c.Email == "" }, SeverityError)
	v.CheckNotNull("country", func(c silver.Customer) bool { return c.Country == "" }, SeverityError)

	v.CheckUnique("customer_id", func(c silver.Customer) string { return c.CustomerID }, SeverityError)
	v.CheckUnique("email", func(c silver.Customer) string { return c.Email }, SeverityWarning)

	v.CheckRowCount(1, nil, SeverityError)
	return v
}

func ValidateProducts(rows []silver.Product) *Validator[silver.Product] {
	v := NewValidator("products", rows)

	v.CheckNotNull("product_id", func(p silver.Product) bool { return p.ProductID == "" }, SeverityError)
	v.CheckNotNull("name", func(p silver.Product) bool { return p.Name == "" }, SeverityError)
	v.CheckNotNull("price", func(p silver.Product) bool { return p.Price == nil }, SeverityError)
	v.CheckNotNull("category", func(p silver.Product) bool { return p.Category == "" }, SeverityError)

	v.CheckUnique("product_id", func(p silver.Product) string { return p.ProductID }, SeverityError)
	v.CheckUnique("sku", func(p silver.Product) string { return p.SKU }, SeverityWarning)

	v.CheckRange("price", func(p silver.Product) *float64 { return p.Price }, f(0), nil, SeverityError)
	v.CheckRange("cost", func(p silver.Product) *float64 { return p.Cost }, f(0), nil, SeverityError)
	v.CheckRange("margin_percent", func(p silver.Product) *float64 { return p.MarginPercent }, f(-100), f(100), SeverityWarning)
	return v
}

func ValidateOrders(rows []silver.Order, customers []silver.Customer) *Validator[silver.Order] {
	v := NewValidator("orders", rows)

	v.CheckNotNull("order_id", func(o silver.Order) bool { return o.OrderID == "" }, SeverityError)
	v.CheckNotNull("customer_id", func(o silver.Order) bool { return o.CustomerID == "" }, SeverityError)
	v.CheckNotNull("order_date", func(o silver.Order) bool { return o.OrderDate == nil }, SeverityError)
	v.CheckNotNull("total_amount", func(o silver.Order) bool { return o.TotalAmount == nil }, SeverityError)

	v.CheckUnique("order_id", func(o silver.Order) string { return o.OrderID }, SeverityError)

	v.CheckRange("total_amount", func(o silver.Order) *float64 { return o.TotalAmount }, f(0), nil, SeverityError)
	v.CheckRange("subtotal", func(o silver.Order) *float64 { return o.Subtotal }, f(0), nil, SeverityError)

	v.CheckValuesInSet("status", func(o silver.Order) string { return o.Status }, OrderStatuses, SeverityError)

	CheckRefIntegrity(v, "customer_id",
		func(o silver.Order) string { return o.CustomerID },
		customers,
		func(c silver.Customer) string { return c.CustomerID },
		SeverityError)
	return v
}

func ValidateOrderItems(rows []silver.OrderItem, orders []silver.Order, products []silver.Product) *Validator[silver.OrderItem] {
	v := NewValidator("order_items", rows)

	v.CheckNotNull("order_item_id", func(i silver.OrderItem) bool { return i.OrderItemID == "" }, SeverityError)
	v.CheckNotNull("order_id", func(i silver.OrderItem) bool { return i.OrderID == "" }, SeverityError)
	v.CheckNotNull("product_id", func(i silver.OrderItem) bool { return i.ProductID == "" }, SeverityError)
	v.CheckNotNull("quantity", func(i silver.OrderItem) bool { return i.Quantity == nil }, SeverityError)

	v.CheckUnique("order_item_id", func(i silver.OrderItem) string { return i.OrderItemID }, SeverityError)

	v.CheckRange("quantity", quantityOf, f(1), nil, SeverityError)
	v.CheckRange("unit_price", func(i silver.OrderItem) *float64 { return i.UnitPrice }, f(0), nil, SeverityError)
	v.CheckRange("discount_percent", func(i silver.OrderItem) *float64 { return i.DiscountPercent }, f(0), f(100), SeverityError)

	CheckRefIntegrity(v, "order_id",
		func(i silver.OrderItem) string { return i.OrderID },
		orders,
		func(o silver.Order) string { return o.OrderID },
		SeverityError)
	CheckRefIntegrity(v, "product_id",
		func(i silver.OrderItem) string { return i.ProductID },
		products,
		func(p silver.Product) string { return p.ProductID },
		SeverityError)
	return v
}

// ValidateFactSales certifies the fact build: no dimension orphans survive,
// keys are unique, and measures are non-negative.
func ValidateFactSales(rows []gold.FactSales, customers []gold.DimCustomer, products []gold.DimProduct) *Validator[gold.FactSales] {
	v := NewValidator("fact_sales", rows)

	v.CheckNotNull("date_key", func(fs gold.FactSales) bool { return fs.DateKey == nil }, SeverityError)
	v.CheckUnique("order_item_id", func(fs gold.FactSales) string { return fs.OrderItemID }, SeverityError)

	v.CheckRange("quantity", func(fs gold.FactSales) *float64 {
		if fs.Quantity == nil {
			return nil
		}
		q := float64(*fs.Quantity)
		return &q
	}, f(1), nil, SeverityError)
	v.CheckRange("gross_revenue", func(fs gold.FactSales) *float64 { return fs.GrossRevenue }, f(0), nil, SeverityError)
	v.CheckRange("net_revenue", func(fs gold.FactSales) *float64 { return fs.NetRevenue }, f(0), nil, SeverityError)

	CheckRefIntegrity(v, "customer_key",
		func(fs gold.FactSales) int32 { return fs.CustomerKey },
		customers,
		func(c gold.DimCustomer) int32 { return c.CustomerKey },
		SeverityError)
	CheckRefIntegrity(v, "product_key",
		func(fs gold.FactSales) int32 { return fs.ProductKey },
		products,
		func(p gold.DimProduct) int32 { return p.ProductKey },
		SeverityError)

	v.CheckRowCount(1, nil, SeverityWarning)
	return v
}

func quantityOf(i silver.OrderItem) *float64 {
	if i.Quantity == nil {
		return nil
	}
	q := float64(*i.Quantity)
	return &q
}

func f(v float64) *float64 { return &v }
