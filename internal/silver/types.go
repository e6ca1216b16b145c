// Package silver cleans and types bronze data into the single source of
// truth for the gold layer.
//
// Every transformer is a pure function: cast raw text to declared types
// (failed casts become nulls, never errors), normalize formats, derive
// validation flags, and deduplicate on the entity's natural key keeping the
// record with the greatest ingestion timestamp. Rows are never dropped for
// failing a business rule; the rule's outcome is recorded as a flag column
// for downstream consumers.
package silver

import (
	"time"

	"lakehouse/internal/schema"
)

type Customer struct {
	CustomerID     string     `parquet:"customer_id"`
	Email          string     `parquet:"email"`
	EmailDomain    string     `parquet:"email_domain"`
	IsValidEmail   bool       `parquet:"is_valid_email"`
	FirstName      string     `parquet:"first_name"`
	LastName       string     `parquet:"last_name"`
	FullName       string     `parquet:"full_name"`
	Phone          string     `parquet:"phone"`
	Country        string     `parquet:"country"`
	City           string     `parquet:"city"`
	Address        string     `parquet:"address"`
	CreatedAt      *time.Time `parquet:"created_at,optional,timestamp"`
	UpdatedAt      *time.Time `parquet:"updated_at,optional,timestamp"`
	AccountAgeDays *int32     `parquet:"account_age_days,optional"`
	Segment        string     `parquet:"segment"`
	schema.Lineage
	ProcessedAt time.Time `parquet:"_processed_at,timestamp"`
}

type Product struct {
	ProductID     string     `parquet:"product_id"`
	SKU           string     `parquet:"sku"`
	Name          string     `parquet:"name"`
	Description   string     `parquet:"description"`
	Category      string     `parquet:"category"`
	Subcategory   string     `parquet:"subcategory"`
	Brand         string     `parquet:"brand"`
	Price         *float64   `parquet:"price,optional"`
	Cost          *float64   `parquet:"cost,optional"`
	MarginPercent *float64   `parquet:"margin_percent,optional"`
	StockQuantity *int32     `parquet:"stock_quantity,optional"`
	IsActive      bool       `parquet:"is_active"`
	CreatedAt     *time.Time `parquet:"created_at,optional,timestamp"`
	schema.Lineage
	ProcessedAt time.Time `parquet:"_processed_at,timestamp"`
}

type Order struct {
	OrderID         string     `parquet:"order_id"`
	CustomerID      string     `parquet:"customer_id"`
	OrderDate       *time.Time `parquet:"order_date,optional,timestamp"`
	OrderYear       *int32     `parquet:"order_year,optional"`
	OrderMonth      *int32     `parquet:"order_month,optional"`
	OrderDay        *int32     `parquet:"order_day,optional"`
	OrderDayOfWeek  *int32     `parquet:"order_day_of_week,optional"`
	OrderWeek       *int32     `parquet:"order_week,optional"`
	Status          string     `parquet:"status"`
	PaymentMethod   string     `parquet:"payment_method"`
	Subtotal        *float64   `parquet:"subtotal,optional"`
	TaxAmount       *float64   `parquet:"tax_amount,optional"`
	ShippingAmount  *float64   `parquet:"shipping_amount,optional"`
	DiscountAmount  *float64   `parquet:"discount_amount,optional"`
	TotalAmount     *float64   `parquet:"total_amount,optional"`
	CalculatedTotal *float64   `parquet:"calculated_total,optional"`
	IsTotalValid    bool       `parquet:"is_total_valid"`
	Currency        string     `parquet:"currency"`
	ShippingCountry string     `parquet:"shipping_country"`
	ShippingCity    string     `parquet:"shipping_city"`
	schema.Lineage
	ProcessedAt time.Time `parquet:"_processed_at,timestamp"`
}

type OrderItem struct {
	OrderItemID         string   `parquet:"order_item_id"`
	OrderID             string   `parquet:"order_id"`
	ProductID           string   `parquet:"product_id"`
	Quantity            *int32   `parquet:"quantity,optional"`
	UnitPrice           *float64 `parquet:"unit_price,optional"`
	GrossAmount         *float64 `parquet:"gross_amount,optional"`
	DiscountPercent     *float64 `parquet:"discount_percent,optional"`
	DiscountAmount      *float64 `parquet:"discount_amount,optional"`
	LineTotal           *float64 `parquet:"line_total,optional"`
	CalculatedLineTotal *float64 `parquet:"calculated_line_total,optional"`
	IsLineTotalValid    bool     `parquet:"is_line_total_valid"`
	schema.Lineage
	ProcessedAt time.Time `parquet:"_processed_at,timestamp"`
}
