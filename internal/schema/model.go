package schema

import "time"

// Timestamp layout used across raw sources (ISO-8601, no zone).
const Layout = "2006-01-02T15:04:05"

// DateLayout is the layout of the ingestion-date partition key.
const DateLayout = "2006-01-02"

// Lineage carries the metadata attached to every record at bronze ingestion
// and threaded through silver unchanged.
type Lineage struct {
	IngestedAt     time.Time `parquet:"_ingested_at,timestamp"`
	SourceFile     string    `parquet:"_source_file"`
	IngestionDate  string    `parquet:"_ingestion_date"`
	BatchID        string    `parquet:"_batch_id"`
	SourceChecksum string    `parquet:"_source_checksum"`
}

// SetLineage stamps the lineage block. Promoted through embedding, it lets
// ingestion code handle every raw record type generically.
func (l *Lineage) SetLineage(v Lineage) { *l = v }

// Raw records keep every business field as text, exactly as read from the
// source. Typing is silver's job.

type RawCustomer struct {
	CustomerID string `parquet:"customer_id"`
	Email      string `parquet:"email"`
	FirstName  string `parquet:"first_name"`
	LastName   string `parquet:"last_name"`
	Phone      string `parquet:"phone"`
	Country    string `parquet:"country"`
	City       string `parquet:"city"`
	Address    string `parquet:"address"`
	CreatedAt  string `parquet:"created_at"`
	UpdatedAt  string `parquet:"updated_at"`
	Lineage
}

type RawProduct struct {
	ProductID     string `parquet:"product_id"`
	SKU           string `parquet:"sku"`
	Name          string `parquet:"name"`
	Description   string `parquet:"description"`
	Category      string `parquet:"category"`
	Subcategory   string `parquet:"subcategory"`
	Brand         string `parquet:"brand"`
	Price         string `parquet:"price"`
	Cost          string `parquet:"cost"`
	StockQuantity string `parquet:"stock_quantity"`
	IsActive      string `parquet:"is_active"`
	CreatedAt     string `parquet:"created_at"`
	Lineage
}

type RawOrder struct {
	OrderID         string `parquet:"order_id"`
	CustomerID      string `parquet:"customer_id"`
	OrderDate       string `parquet:"order_date"`
	Status          string `parquet:"status"`
	PaymentMethod   string `parquet:"payment_method"`
	Subtotal        string `parquet:"subtotal"`
	TaxAmount       string `parquet:"tax_amount"`
	ShippingAmount  string `parquet:"shipping_amount"`
	DiscountAmount  string `parquet:"discount_amount"`
	TotalAmount     string `parquet:"total_amount"`
	Currency        string `parquet:"currency"`
	ShippingCountry string `parquet:"shipping_country"`
	ShippingCity    string `parquet:"shipping_city"`
	Lineage
}

type RawOrderItem struct {
	OrderItemID     string `parquet:"order_item_id"`
	OrderID         string `parquet:"order_id"`
	ProductID       string `parquet:"product_id"`
	Quantity        string `parquet:"quantity"`
	UnitPrice       string `parquet:"unit_price"`
	DiscountPercent string `parquet:"discount_percent"`
	LineTotal       string `parquet:"line_total"`
	Lineage
}

// FromRow builders assemble typed raw records from a row already aligned to
// the contract's column order. They are the only place the column order is
// interpreted, so ingestion and the synthetic generator stay in sync.

func RawCustomerFromRow(row []string) RawCustomer {
	return RawCustomer{
		CustomerID: row[0], Email: row[1], FirstName: row[2], LastName: row[3],
		Phone: row[4], Country: row[5], City: row[6], Address: row[7],
		CreatedAt: row[8], UpdatedAt: row[9],
	}
}

func RawProductFromRow(row []string) RawProduct {
	return RawProduct{
		ProductID: row[0], SKU: row[1], Name: row[2], Description: row[3],
		Category: row[4], Subcategory: row[5], Brand: row[6], Price: row[7],
		Cost: row[8], StockQuantity: row[9], IsActive: row[10], CreatedAt: row[11],
	}
}

func RawOrderFromRow(row []string) RawOrder {
	return RawOrder{
		OrderID: row[0], CustomerID: row[1], OrderDate: row[2], Status: row[3],
		PaymentMethod: row[4], Subtotal: row[5], TaxAmount: row[6],
		ShippingAmount: row[7], DiscountAmount: row[8], TotalAmount: row[9],
		Currency: row[10], ShippingCountry: row[11], ShippingCity: row[12],
	}
}

func RawOrderItemFromRow(row []string) RawOrderItem {
	return RawOrderItem{
		OrderItemID: row[0], OrderID: row[1], ProductID: row[2], Quantity: row[3],
		UnitPrice: row[4], DiscountPercent: row[5], LineTotal: row[6],
	}
}
