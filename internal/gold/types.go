// Package gold builds the business-ready dimensional model from silver
// data: dim_customer, dim_product, dim_date, the order-item grain
// fact_sales table, and pre-aggregated summary tables.
//
// Builders are pure functions over in-memory snapshots and fully recompute
// their output on every run. Surrogate keys come from a stable sort over
// the natural key, so rebuilding from unchanged input yields an identical
// table.
package gold

import "time"

// DimCustomer carries customer attributes plus order-derived metrics and
// classifications. The structural versioning columns are present but every
// rebuild emits a single current version per customer.
type DimCustomer struct {
	CustomerKey int32  `parquet:"customer_key"`
	CustomerID  string `parquet:"customer_id"`

	Email     string `parquet:"email"`
	FullName  string `parquet:"full_name"`
	FirstName string `parquet:"first_name"`
	LastName  string `parquet:"last_name"`
	Phone     string `parquet:"phone"`
	Country   string `parquet:"country"`
	City      string `parquet:"city"`

	Segment        string `parquet:"segment"`
	ValueTier      string `parquet:"value_tier"`
	CustomerStatus string `parquet:"customer_status"`
	IsValidEmail   bool   `parquet:"is_valid_email"`

	TotalOrders        int64      `parquet:"total_orders"`
	TotalSpend         float64    `parquet:"total_spend"`
	FirstOrderDate     *time.Time `parquet:"first_order_date,optional,timestamp"`
	LastOrderDate      *time.Time `parquet:"last_order_date,optional,timestamp"`
	AvgOrderValue      *float64   `parquet:"avg_order_value,optional"`
	DaysSinceLastOrder *int32     `parquet:"days_since_last_order,optional"`

	EffectiveFrom *time.Time `parquet:"effective_from,optional,timestamp"`
	EffectiveTo   *time.Time `parquet:"effective_to,optional,timestamp"`
	IsCurrent     bool       `parquet:"is_current"`

	CreatedAt time.Time `parquet:"_created_at,timestamp"`
}

type DimProduct struct {
	ProductKey int32  `parquet:"product_key"`
	ProductID  string `parquet:"product_id"`
	SKU        string `parquet:"sku"`

	Name        string `parquet:"name"`
	Description string `parquet:"description"`
	Brand       string `parquet:"brand"`
	Category    string `parquet:"category"`
	Subcategory string `parquet:"subcategory"`

	Price         *float64 `parquet:"price,optional"`
	Cost          *float64 `parquet:"cost,optional"`
	MarginPercent *float64 `parquet:"margin_percent,optional"`
	PriceTier     string   `parquet:"price_tier"`
	IsHighMargin  bool     `parquet:"is_high_margin"`

	StockQuantity *int32 `parquet:"stock_quantity,optional"`
	StockStatus   string `parquet:"stock_status"`
	IsActive      bool   `parquet:"is_active"`

	EffectiveFrom *time.Time `parquet:"effective_from,optional,timestamp"`
	EffectiveTo   *time.Time `parquet:"effective_to,optional,timestamp"`
	IsCurrent     bool       `parquet:"is_current"`

	CreatedAt time.Time `parquet:"_created_at,timestamp"`
}

// DimDate is one row per calendar day, fully determined by the date itself.
type DimDate struct {
	Date    time.Time `parquet:"date,date"`
	DateKey int32     `parquet:"date_key"`

	DayOfMonth int32 `parquet:"day_of_month"`
	DayOfWeek  int32 `parquet:"day_of_week"`
	DayOfYear  int32 `parquet:"day_of_year"`
	WeekOfYear int32 `parquet:"week_of_year"`
	Month      int32 `parquet:"month"`
	Quarter    int32 `parquet:"quarter"`
	Year       int32 `parquet:"year"`

	DayName        string `parquet:"day_name"`
	DayNameShort   string `parquet:"day_name_short"`
	MonthName      string `parquet:"month_name"`
	MonthNameShort string `parquet:"month_name_short"`

	YearMonth   string `parquet:"year_month"`
	YearQuarter string `parquet:"year_quarter"`
	YearWeek    string `parquet:"year_week"`

	IsWeekend      bool `parquet:"is_weekend"`
	IsWeekday      bool `parquet:"is_weekday"`
	IsMonthStart   bool `parquet:"is_month_start"`
	IsMonthEnd     bool `parquet:"is_month_end"`
	IsQuarterStart bool `parquet:"is_quarter_start"`
	IsQuarterEnd   bool `parquet:"is_quarter_end"`
	IsYearStart    bool `parquet:"is_year_start"`
	IsYearEnd      bool `parquet:"is_year_end"`

	FiscalYear    int32 `parquet:"fiscal_year"`
	FiscalQuarter int32 `parquet:"fiscal_quarter"`

	CreatedAt time.Time `parquet:"_created_at,timestamp"`
}

// FactSales is the sales fact at order-item grain. order_id and
// order_item_id ride along as degenerate dimensions.
type FactSales struct {
	SaleKey int32 `parquet:"sale_key"`

	DateKey     *int32 `parquet:"date_key,optional"`
	CustomerKey int32  `parquet:"customer_key"`
	ProductKey  int32  `parquet:"product_key"`

	OrderID     string `parquet:"order_id"`
	OrderItemID string `parquet:"order_item_id"`

	OrderDate       *time.Time `parquet:"order_date,optional,timestamp"`
	Status          string     `parquet:"status"`
	PaymentMethod   string     `parquet:"payment_method"`
	ShippingCountry string     `parquet:"shipping_country"`

	Quantity        *int32   `parquet:"quantity,optional"`
	UnitPrice       *float64 `parquet:"unit_price,optional"`
	DiscountPercent *float64 `parquet:"discount_percent,optional"`
	GrossRevenue    *float64 `parquet:"gross_revenue,optional"`
	DiscountAmount  *float64 `parquet:"discount_amount,optional"`
	NetRevenue      *float64 `parquet:"net_revenue,optional"`
	CostOfGoods     *float64 `parquet:"cost_of_goods,optional"`
	Profit          *float64 `parquet:"profit,optional"`
	ProfitMarginPct float64  `parquet:"profit_margin_pct"`

	AllocatedTax      *float64 `parquet:"allocated_tax,optional"`
	AllocatedShipping *float64 `parquet:"allocated_shipping,optional"`

	// IsDimOrphan is set only under the keep-orphans policy, for rows whose
	// customer or product had no dimension match (their keys stay 0).
	IsDimOrphan bool `parquet:"is_dim_orphan"`

	CreatedAt time.Time `parquet:"_created_at,timestamp"`
}

// DailySalesSummary pre-aggregates fact_sales by day and destination
// country.
type DailySalesSummary struct {
	DateKey         *int32 `parquet:"date_key,optional"`
	ShippingCountry string `parquet:"shipping_country"`

	TotalOrders     int64   `parquet:"total_orders"`
	TotalItemsSold  int64   `parquet:"total_items_sold"`
	GrossRevenue    float64 `parquet:"gross_revenue"`
	NetRevenue      float64 `parquet:"net_revenue"`
	TotalProfit     float64 `parquet:"total_profit"`
	AvgProfitMargin float64 `parquet:"avg_profit_margin"`
	UniqueCustomers int64   `parquet:"unique_customers"`
	AvgOrderValue   float64 `parquet:"avg_order_value"`
	ItemsPerOrder   float64 `parquet:"items_per_order"`

	CreatedAt time.Time `parquet:"_created_at,timestamp"`
}

// ProductPerformance pre-aggregates fact_sales per product with a revenue
// rank within each category.
type ProductPerformance struct {
	ProductID   string `parquet:"product_id"`
	Name        string `parquet:"name"`
	Category    string `parquet:"category"`
	Subcategory string `parquet:"subcategory"`
	Brand       string `parquet:"brand"`

	TotalQuantitySold int64   `parquet:"total_quantity_sold"`
	TotalRevenue      float64 `parquet:"total_revenue"`
	TotalProfit       float64 `parquet:"total_profit"`
	NumberOfOrders    int64   `parquet:"number_of_orders"`
	UniqueCustomers   int64   `parquet:"unique_customers"`
	AvgSellingPrice   float64 `parquet:"avg_selling_price"`
	AvgDiscountPct    float64 `parquet:"avg_discount_pct"`
	ProfitMarginPct   float64 `parquet:"profit_margin_pct"`

	RevenueRankInCategory int32 `parquet:"revenue_rank_in_category"`

	CreatedAt time.Time `parquet:"_created_at,timestamp"`
}
