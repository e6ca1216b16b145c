// Package warehouse serves the gold layer from Postgres. Each load fully
// replaces a table inside one transaction (truncate then COPY), so readers
// never see a half-loaded table.
package warehouse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"lakehouse/internal/gold"
)

// Config holds warehouse connection settings.
type Config struct {
	DSN    string // connection string for pgxpool
	Schema string // target schema, e.g. "gold"
}

// Loader writes gold tables to Postgres.
type Loader struct {
	pool *pgxpool.Pool
	cfg  Config
}

// New constructs a Loader and returns a close function for cleanup.
func New(ctx context.Context, cfg Config) (*Loader, func(), error) {
	if cfg.Schema == "" {
		cfg.Schema = "gold"
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, errors.Wrap(err, "pgxpool")
	}
	return &Loader{pool: pool, cfg: cfg}, pool.Close, nil
}

// EnsureSchema creates the target schema and tables when absent.
func (l *Loader) EnsureSchema(ctx context.Context) error {
	stmts := append([]string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgIdent(l.cfg.Schema)),
	}, createTableStmts(l.cfg.Schema)...)
	for _, stmt := range stmts {
		if _, err := l.pool.Exec(ctx, stmt); err != nil {
			return errors.Wrap(err, "ensure schema")
		}
	}
	return nil
}

// LoadDimCustomer replaces the dim_customer table.
func (l *Loader) LoadDimCustomer(ctx context.Context, log *slog.Logger, rows []gold.DimCustomer) error {
	return replaceAll(ctx, l, log, "dim_customer", dimCustomerCols, rows, func(d gold.DimCustomer) []any {
		return []any{
			d.CustomerKey, d.CustomerID, d.Email, d.FullName, d.FirstName, d.LastName,
			d.Phone, d.Country, d.City, d.Segment, d.ValueTier, d.CustomerStatus,
			d.IsValidEmail, d.TotalOrders, d.TotalSpend, d.FirstOrderDate, d.LastOrderDate,
			d.AvgOrderValue, d.DaysSinceLastOrder, d.EffectiveFrom, d.EffectiveTo, d.IsCurrent,
			d.CreatedAt,
		}
	})
}

// LoadDimProduct replaces the dim_product table.
func (l *Loader) LoadDimProduct(ctx context.Context, log *slog.Logger, rows []gold.DimProduct) error {
	return replaceAll(ctx, l, log, "dim_product", dimProductCols, rows, func(d gold.DimProduct) []any {
		return []any{
			d.ProductKey, d.ProductID, d.SKU, d.Name, d.Description, d.Brand,
			d.Category, d.Subcategory, d.Price, d.Cost, d.MarginPercent, d.PriceTier,
			d.IsHighMargin, d.StockQuantity, d.StockStatus, d.IsActive,
			d.EffectiveFrom, d.EffectiveTo, d.IsCurrent, d.CreatedAt,
		}
	})
}

// LoadDimDate replaces the dim_date table.
func (l *Loader) LoadDimDate(ctx context.Context, log *slog.Logger, rows []gold.DimDate) error {
	return replaceAll(ctx, l, log, "dim_date", dimDateCols, rows, func(d gold.DimDate) []any {
		return []any{
			d.DateKey, d.Date, d.DayOfMonth, d.DayOfWeek, d.DayOfYear, d.WeekOfYear,
			d.Month, d.Quarter, d.Year, d.DayName, d.DayNameShort, d.MonthName,
			d.MonthNameShort, d.YearMonth, d.YearQuarter, d.YearWeek,
			d.IsWeekend, d.IsWeekday, d.IsMonthStart, d.IsMonthEnd,
			d.IsQuarterStart, d.IsQuarterEnd, d.IsYearStart, d.IsYearEnd,
			d.FiscalYear, d.FiscalQuarter, d.CreatedAt,
		}
	})
}

// LoadFactSales replaces the fact_sales table.
func (l *Loader) LoadFactSales(ctx context.Context, log *slog.Logger, rows []gold.FactSales) error {
	return replaceAll(ctx, l, log, "fact_sales", factSalesCols, rows, func(f gold.FactSales) []any {
		return []any{
			f.SaleKey, f.DateKey, f.CustomerKey, f.ProductKey, f.OrderID, f.OrderItemID,
			f.OrderDate, f.Status, f.PaymentMethod, f.ShippingCountry,
			f.Quantity, f.UnitPrice, f.DiscountPercent, f.GrossRevenue, f.DiscountAmount,
			f.NetRevenue, f.CostOfGoods, f.Profit, f.ProfitMarginPct,
			f.AllocatedTax, f.AllocatedShipping, f.IsDimOrphan, f.CreatedAt,
		}
	})
}

// LoadDailySalesSummary replaces the agg_daily_sales table.
func (l *Loader) LoadDailySalesSummary(ctx context.Context, log *slog.Logger, rows []gold.DailySalesSummary) error {
	return replaceAll(ctx, l, log, "agg_daily_sales", dailySalesCols, rows, func(s gold.DailySalesSummary) []any {
		return []any{
			s.DateKey, s.ShippingCountry, s.TotalOrders, s.TotalItemsSold,
			s.GrossRevenue, s.NetRevenue, s.TotalProfit, s.AvgProfitMargin,
			s.UniqueCustomers, s.AvgOrderValue, s.ItemsPerOrder, s.CreatedAt,
		}
	})
}

// LoadProductPerformance replaces the agg_product_performance table.
func (l *Loader) LoadProductPerformance(ctx context.Context, log *slog.Logger, rows []gold.ProductPerformance) error {
	return replaceAll(ctx, l, log, "agg_product_performance", productPerfCols, rows, func(p gold.ProductPerformance) []any {
		return []any{
			p.ProductID, p.Name, p.Category, p.Subcategory, p.Brand,
			p.TotalQuantitySold, p.TotalRevenue, p.TotalProfit, p.NumberOfOrders,
			p.UniqueCustomers, p.AvgSellingPrice, p.AvgDiscountPct, p.ProfitMarginPct,
			p.RevenueRankInCategory, p.CreatedAt,
		}
	})
}

// replaceAll truncates the target table and COPYs rows into it inside one
// transaction.
func replaceAll[T any](ctx context.Context, l *Loader, log *slog.Logger, table string, cols []string, rows []T, rowFn func(T) []any) error {
	fq := pgIdent(l.cfg.Schema) + "." + pgIdent(table)

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "TRUNCATE "+fq); err != nil {
		return errors.Wrapf(err, "truncate %s", table)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{l.cfg.Schema, table},
		cols,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return rowFn(rows[i]), nil
		}))
	if err != nil {
		return errors.Wrapf(err, "copy into %s", table)
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit")
	}

	log.Info("warehouse table loaded", "table", table, "rows", n)
	return nil
}

func pgIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
