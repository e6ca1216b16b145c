package warehouse

import "fmt"

var dimCustomerCols = []string{
	"customer_key", "customer_id", "email", "full_name", "first_name", "last_name",
	"phone", "country", "city", "segment", "value_tier", "customer_status",
	"is_valid_email", "total_orders", "total_spend", "first_order_date", "last_order_date",
	"avg_order_value", "days_since_last_order", "effective_from", "effective_to", "is_current",
	"created_at",
}

var dimProductCols = []string{
	"product_key", "product_id", "sku", "name", "description", "brand",
	"category", "subcategory", "price", "cost", "margin_percent", "price_tier",
	"is_high_margin", "stock_quantity", "stock_status", "is_active",
	"effective_from", "effective_to", "is_current", "created_at",
}

var dimDateCols = []string{
	"date_key", "date", "day_of_month", "day_of_week", "day_of_year", "week_of_year",
	"month", "quarter", "year", "day_name", "day_name_short", "month_name",
	"month_name_short", "year_month", "year_quarter", "year_week",
	"is_weekend", "is_weekday", "is_month_start", "is_month_end",
	"is_quarter_start", "is_quarter_end", "is_year_start", "is_year_end",
	"fiscal_year", "fiscal_quarter", "created_at",
}

var factSalesCols = []string{
	"sale_key", "date_key", "customer_key", "product_key", "order_id", "order_item_id",
	"order_date", "status", "payment_method", "shipping_country",
	"quantity", "unit_price", "discount_percent", "gross_revenue", "discount_amount",
	"net_revenue", "cost_of_goods", "profit", "profit_margin_pct",
	"allocated_tax", "allocated_shipping", "is_dim_orphan", "created_at",
}

var dailySalesCols = []string{
	"date_key", "shipping_country", "total_orders", "total_items_sold",
	"gross_revenue", "net_revenue", "total_profit", "avg_profit_margin",
	"unique_customers", "avg_order_value", "items_per_order", "created_at",
}

var productPerfCols = []string{
	"product_id", "name", "category", "subcategory", "brand",
	"total_quantity_sold", "total_revenue", "total_profit", "number_of_orders",
	"unique_customers", "avg_selling_price", "avg_discount_pct", "profit_margin_pct",
	"revenue_rank_in_category", "created_at",
}

// createTableStmts returns CREATE TABLE IF NOT EXISTS statements for every
// warehouse table in the given schema.
func createTableStmts(schema string) []string {
	s := pgIdent(schema)
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.dim_customer (
			customer_key INTEGER PRIMARY KEY,
			customer_id TEXT NOT NULL,
			email TEXT,
			full_name TEXT,
			first_name TEXT,
			last_name TEXT,
			phone TEXT,
			country TEXT,
			city TEXT,
			segment TEXT,
			value_tier TEXT,
			customer_status TEXT,
			is_valid_email BOOLEAN NOT NULL,
			total_orders BIGINT NOT NULL,
			total_spend DOUBLE PRECISION NOT NULL,
			first_order_date TIMESTAMPTZ,
			last_order_date TIMESTAMPTZ,
			avg_order_value DOUBLE PRECISION,
			days_since_last_order INTEGER,
			effective_from TIMESTAMPTZ,
			effective_to TIMESTAMPTZ,
			is_current BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`, s),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.dim_product (
			product_key INTEGER PRIMARY KEY,
			product_id TEXT NOT NULL,
			sku TEXT,
			name TEXT,
			description TEXT,
			brand TEXT,
			category TEXT,
			subcategory TEXT,
			price DOUBLE PRECISION,
			cost DOUBLE PRECISION,
			margin_percent DOUBLE PRECISION,
			price_tier TEXT,
			is_high_margin BOOLEAN NOT NULL,
			stock_quantity INTEGER,
			stock_status TEXT,
			is_active BOOLEAN NOT NULL,
			effective_from TIMESTAMPTZ,
			effective_to TIMESTAMPTZ,
			is_current BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`, s),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.dim_date (
			date_key INTEGER PRIMARY KEY,
			date DATE NOT NULL,
			day_of_month INTEGER NOT NULL,
			day_of_week INTEGER NOT NULL,
			day_of_year INTEGER NOT NULL,
			week_of_year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			quarter INTEGER NOT NULL,
			year INTEGER NOT NULL,
			day_name TEXT NOT NULL,
			day_name_short TEXT NOT NULL,
			month_name TEXT NOT NULL,
			month_name_short TEXT NOT NULL,
			year_month TEXT NOT NULL,
			year_quarter TEXT NOT NULL,
			year_week TEXT NOT NULL,
			is_weekend BOOLEAN NOT NULL,
			is_weekday BOOLEAN NOT NULL,
			is_month_start BOOLEAN NOT NULL,
			is_month_end BOOLEAN NOT NULL,
			is_quarter_start BOOLEAN NOT NULL,
			is_quarter_end BOOLEAN NOT NULL,
			is_year_start BOOLEAN NOT NULL,
			is_year_end BOOLEAN NOT NULL,
			fiscal_year INTEGER NOT NULL,
			fiscal_quarter INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`, s),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.fact_sales (
			sale_key INTEGER PRIMARY KEY,
			date_key INTEGER,
			customer_key INTEGER NOT NULL,
			product_key INTEGER NOT NULL,
			order_id TEXT NOT NULL,
			order_item_id TEXT NOT NULL,
			order_date TIMESTAMPTZ,
			status TEXT,
			payment_method TEXT,
			shipping_country TEXT,
			quantity INTEGER,
			unit_price DOUBLE PRECISION,
			discount_percent DOUBLE PRECISION,
			gross_revenue DOUBLE PRECISION,
			discount_amount DOUBLE PRECISION,
			net_revenue DOUBLE PRECISION,
			cost_of_goods DOUBLE PRECISION,
			profit DOUBLE PRECISION,
			profit_margin_pct DOUBLE PRECISION NOT NULL,
			allocated_tax DOUBLE PRECISION,
			allocated_shipping DOUBLE PRECISION,
			is_dim_orphan BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`, s),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.agg_daily_sales (
			date_key INTEGER,
			shipping_country TEXT NOT NULL,
			total_orders BIGINT NOT NULL,
			total_items_sold BIGINT NOT NULL,
			gross_revenue DOUBLE PRECISION NOT NULL,
			net_revenue DOUBLE PRECISION NOT NULL,
			total_profit DOUBLE PRECISION NOT NULL,
			avg_profit_margin DOUBLE PRECISION NOT NULL,
			unique_customers BIGINT NOT NULL,
			avg_order_value DOUBLE PRECISION NOT NULL,
			items_per_order DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`, s),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.agg_product_performance (
			product_id TEXT NOT NULL,
			name TEXT,
			category TEXT,
			subcategory TEXT,
			brand TEXT,
			total_quantity_sold BIGINT NOT NULL,
			total_revenue DOUBLE PRECISION NOT NULL,
			total_profit DOUBLE PRECISION NOT NULL,
			number_of_orders BIGINT NOT NULL,
			unique_customers BIGINT NOT NULL,
			avg_selling_price DOUBLE PRECISION NOT NULL,
			avg_discount_pct DOUBLE PRECISION NOT NULL,
			profit_margin_pct DOUBLE PRECISION NOT NULL,
			revenue_rank_in_category INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`, s),
	}
}
