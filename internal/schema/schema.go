// Package schema is the registry of raw source contracts for the pipeline.
//
// Every source entity (customers, products, orders, order_items) has a fixed,
// explicit column contract. All raw columns are text; typing happens in the
// silver layer with an explicit cast step, never by inference at ingestion.
// A file whose header does not match its contract exactly is rejected.
package schema

import (
	"sort"

	"github.com/pkg/errors"
)

// Column describes one raw source column.
type Column struct {
	Name     string
	Required bool // non-null in the source contract
}

// Table is the raw contract for one source entity.
type Table struct {
	Name       string
	NaturalKey string // business-identifying column
	Columns    []Column
}

// ColumnNames returns the declared column names in contract order.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// RequiredColumns returns the names of columns the contract marks non-null.
func (t Table) RequiredColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if c.Required {
			out = append(out, c.Name)
		}
	}
	return out
}

// CheckHeader verifies that a file header carries exactly the contract's
// column set, in any order. Both missing and extra columns are schema errors;
// ingestion must fail rather than coerce.
func (t Table) CheckHeader(header []string) error {
	want := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		want[c.Name] = false
	}
	var extra []string
	for _, h := range header {
		if _, ok := want[h]; !ok {
			extra = append(extra, h)
			continue
		}
		want[h] = true
	}
	var missing []string
	for name, seen := range want {
		if !seen {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	if len(missing) > 0 {
		return errors.Errorf("table %s: header missing columns %v", t.Name, missing)
	}
	if len(extra) > 0 {
		return errors.Errorf("table %s: header has undeclared columns %v", t.Name, extra)
	}
	return nil
}

// Table names in the registry.
const (
	Customers  = "customers"
	Products   = "products"
	Orders     = "orders"
	OrderItems = "order_items"
)

var registry = map[string]Table{
	Customers: {
		Name:       Customers,
		NaturalKey: "customer_id",
		Columns: []Column{
			{Name: "customer_id", Required: true},
			{Name: "email"},
			{Name: "first_name"},
			{Name: "last_name"},
			{Name: "phone"},
			{Name: "country"},
			{Name: "city"},
			{Name: "address"},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
	},
	Products: {
		Name:       Products,
		NaturalKey: "product_id",
		Columns: []Column{
			{Name: "product_id", Required: true},
			{Name: "sku"},
			{Name: "name"},
			{Name: "description"},
			{Name: "category"},
			{Name: "subcategory"},
			{Name: "brand"},
			{Name: "price"},
			{Name: "cost"},
			{Name: "stock_quantity"},
			{Name: "is_active"},
			{Name: "created_at"},
		},
	},
	Orders: {
		Name:       Orders,
		NaturalKey: "order_id",
		Columns: []Column{
			{Name: "order_id", Required: true},
			{Name: "customer_id"},
			{Name: "order_date"},
			{Name: "status"},
			{Name: "payment_method"},
			{Name: "subtotal"},
			{Name: "tax_amount"},
			{Name: "shipping_amount"},
			{Name: "discount_amount"},
			{Name: "total_amount"},
			{Name: "currency"},
			{Name: "shipping_country"},
			{Name: "shipping_city"},
		},
	},
	OrderItems: {
		Name:       OrderItems,
		NaturalKey: "order_item_id",
		Columns: []Column{
			{Name: "order_item_id", Required: true},
			{Name: "order_id"},
			{Name: "product_id"},
			{Name: "quantity"},
			{Name: "unit_price"},
			{Name: "discount_percent"},
			{Name: "line_total"},
		},
	},
}

// Lookup returns the contract for a table name.
func Lookup(name string) (Table, error) {
	t, ok := registry[name]
	if !ok {
		return Table{}, errors.Errorf("no schema registered for table %q", name)
	}
	return t, nil
}

// TableNames lists all registered tables in ingestion order.
func TableNames() []string {
	return []string{Customers, Products, Orders, OrderItems}
}
