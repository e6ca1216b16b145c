// Package pipeline orchestrates the lakehouse stages: synthetic data
// generation, object-storage staging, bronze ingestion, silver cleaning,
// gold modeling, quality gating and the warehouse load.
//
// Layers run strictly in order. Within a layer, independent tables are
// processed concurrently; a failure in any table fails the stage.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lakehouse/internal/bronze"
	"lakehouse/internal/config"
	"lakehouse/internal/datagen"
	"lakehouse/internal/gold"
	"lakehouse/internal/metrics"
	"lakehouse/internal/objstore"
	"lakehouse/internal/quality"
	"lakehouse/internal/schema"
	"lakehouse/internal/silver"
	"lakehouse/internal/store"
	"lakehouse/internal/warehouse"
)

// Stage names, in execution order.
const (
	StageGenerate  = "generate"
	StageUpload    = "upload"
	StageBronze    = "bronze"
	StageSilver    = "silver"
	StageGold      = "gold"
	StageQuality   = "quality"
	StageWarehouse = "warehouse"
	StageAll       = "all"
)

// Gold dataset directory names.
const (
	tableDimCustomer = "dim_customer"
	tableDimProduct  = "dim_product"
	tableDimDate     = "dim_date"
	tableFactSales   = "fact_sales"
	tableDailySales  = "agg_daily_sales"
	tableProductPerf = "agg_product_performance"
)

// Stages lists every runnable stage in execution order.
func Stages() []string {
	return []string{StageGenerate, StageUpload, StageBronze, StageSilver, StageGold, StageQuality, StageWarehouse}
}

// Runner executes pipeline stages against one configuration.
type Runner struct {
	cfg *config.Config
	log *slog.Logger
	now func() time.Time
}

func New(cfg *config.Config, log *slog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log, now: time.Now}
}

// Run executes the named stages in pipeline order, regardless of the order
// given. StageAll expands to every stage. The first stage failure aborts
// the run; metrics are flushed either way.
func (r *Runner) Run(ctx context.Context, stages []string) error {
	requested := make(map[string]bool, len(stages))
	for _, s := range stages {
		if s == StageAll {
			for _, all := range Stages() {
				requested[all] = true
			}
			continue
		}
		requested[s] = true
	}
	for s := range requested {
		if !validStage(s) {
			return errors.Errorf("unknown stage %q", s)
		}
	}

	defer func() {
		if err := metrics.Flush(); err != nil {
			r.log.Warn("metrics flush failed", "error", err)
		}
	}()

	runs := []struct {
		name string
		fn   func(context.Context) error
	}{
		{StageGenerate, r.generate},
		{StageUpload, r.upload},
		{StageBronze, r.ingestBronze},
		{StageSilver, r.buildSilver},
		{StageGold, r.buildGold},
		{StageQuality, r.runQuality},
		{StageWarehouse, r.loadWarehouse},
	}
	for _, run := range runs {
		if !requested[run.name] {
			continue
		}
		start := r.now()
		err := run.fn(ctx)
		metrics.RecordStage(run.name, "all", err, r.now().Sub(start))
		if err != nil {
			return errors.Wrapf(err, "stage %s", run.name)
		}
		r.log.Info("stage complete", "stage", run.name, "duration", r.now().Sub(start).String())
	}
	return nil
}

func validStage(s string) bool {
	for _, known := range Stages() {
		if s == known {
			return true
		}
	}
	return false
}

func (r *Runner) generate(ctx context.Context) error {
	g := datagen.New(r.cfg.Generator)
	d := g.Generate()
	return g.WriteCSV(r.log, r.cfg.Paths.Raw, d)
}

func (r *Runner) upload(ctx context.Context) error {
	if r.cfg.ObjStore.Bucket == "" {
		r.log.Info("no object-store bucket configured, skipping upload")
		return nil
	}
	up, closeFn, err := objstore.Open(ctx, r.cfg.ObjStore.Bucket, r.cfg.ObjStore.Prefix)
	if err != nil {
		return err
	}
	defer closeFn()

	_, err = up.UploadDir(ctx, r.log, r.cfg.Paths.Raw, r.now().Format(schema.DateLayout))
	return err
}

func (r *Runner) ingestBronze(ctx context.Context) error {
	batch := bronze.Batch{ID: uuid.NewString()[:8], IngestedAt: r.now().UTC()}
	r.log.Info("starting bronze ingestion", "batch_id", batch.ID)

	g, ctx := errgroup.WithContext(ctx)
	for _, table := range schema.TableNames() {
		g.Go(func() error {
			start := r.now()
			n, err := bronze.Ingest(ctx, r.log, r.cfg.Paths.Raw, r.cfg.Paths.Bronze, table, batch)
			metrics.RecordStage(StageBronze, table, err, r.now().Sub(start))
			metrics.RecordRows(StageBronze, table, "ingested", int64(n))
			return err
		})
	}
	return g.Wait()
}

func (r *Runner) buildSilver(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return transformTable(r, schema.Customers, silver.TransformCustomers) })
	g.Go(func() error { return transformTable(r, schema.Products, silver.TransformProducts) })
	g.Go(func() error { return transformTable(r, schema.Orders, silver.TransformOrders) })
	g.Go(func() error { return transformTable(r, schema.OrderItems, silver.TransformOrderItems) })
	return g.Wait()
}

// transformTable runs one bronze-to-silver transformation end to end:
// read every bronze part, clean and dedup, overwrite the silver dataset.
func transformTable[R, S any](r *Runner, table string, transform func([]R, time.Time) []S) error {
	start := r.now()
	err := func() error {
		raw, err := store.ReadTable[R](filepath.Join(r.cfg.Paths.Bronze, table))
		if err != nil {
			return errors.Wrapf(err, "read bronze %s", table)
		}
		rows := transform(raw, r.now().UTC())
		if err := store.WriteTable(filepath.Join(r.cfg.Paths.Silver, table), rows); err != nil {
			return errors.Wrapf(err, "write silver %s", table)
		}
		metrics.RecordRows(StageSilver, table, "written", int64(len(rows)))
		metrics.RecordRows(StageSilver, table, "deduplicated", int64(len(raw)-len(rows)))
		r.log.Info("silver table built", "table", table, "rows_in", len(raw), "rows_out", len(rows))
		return nil
	}()
	metrics.RecordStage(StageSilver, table, err, r.now().Sub(start))
	return err
}

func (r *Runner) buildGold(ctx context.Context) error {
	var (
		customers []silver.Customer
		products  []silver.Product
		orders    []silver.Order
		items     []silver.OrderItem
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		customers, err = store.ReadTable[silver.Customer](filepath.Join(r.cfg.Paths.Silver, schema.Customers))
		return errors.Wrap(err, "read silver customers")
	})
	g.Go(func() (err error) {
		products, err = store.ReadTable[silver.Product](filepath.Join(r.cfg.Paths.Silver, schema.Products))
		return errors.Wrap(err, "read silver products")
	})
	g.Go(func() (err error) {
		orders, err = store.ReadTable[silver.Order](filepath.Join(r.cfg.Paths.Silver, schema.Orders))
		return errors.Wrap(err, "read silver orders")
	})
	g.Go(func() (err error) {
		items, err = store.ReadTable[silver.OrderItem](filepath.Join(r.cfg.Paths.Silver, schema.OrderItems))
		return errors.Wrap(err, "read silver order_items")
	})
	if err := g.Wait(); err != nil {
		return err
	}

	now := r.now().UTC()
	dimCustomer := gold.BuildDimCustomer(customers, orders, now)
	dimProduct := gold.BuildDimProduct(products, now)
	dimDate := gold.BuildDimDate(r.cfg.DimDate.StartYear, r.cfg.DimDate.EndYear, now)
	facts := gold.BuildFactSales(items, orders, dimCustomer, dimProduct,
		gold.OrphanPolicy(r.cfg.Fact.OrphanPolicy), now)
	dailySales := gold.BuildDailySalesSummary(facts, now)
	productPerf := gold.BuildProductPerformance(facts, dimProduct, now)

	var w errgroup.Group
	w.Go(func() error { return writeGold(r, tableDimCustomer, dimCustomer) })
	w.Go(func() error { return writeGold(r, tableDimProduct, dimProduct) })
	w.Go(func() error { return writeGold(r, tableDimDate, dimDate) })
	w.Go(func() error { return writeFactSales(r, facts) })
	w.Go(func() error { return writeGold(r, tableDailySales, dailySales) })
	w.Go(func() error { return writeGold(r, tableProductPerf, productPerf) })
	return w.Wait()
}

func writeGold[T any](r *Runner, table string, rows []T) error {
	start := r.now()
	err := store.WriteTable(filepath.Join(r.cfg.Paths.Gold, table), rows)
	if err != nil {
		err = errors.Wrapf(err, "write gold %s", table)
	}
	metrics.RecordStage(StageGold, table, err, r.now().Sub(start))
	metrics.RecordRows(StageGold, table, "written", int64(len(rows)))
	if err == nil {
		r.log.Info("gold table built", "table", table, "rows", len(rows))
	}
	return err
}

// writeFactSales overwrites the fact dataset partitioned by date_key.
// Rows without an order date land in the "null" partition.
func writeFactSales(r *Runner, facts []gold.FactSales) error {
	start := r.now()
	err := store.WritePartitioned(filepath.Join(r.cfg.Paths.Gold, tableFactSales), "date_key", facts,
		func(f gold.FactSales) string {
			if f.DateKey == nil {
				return "null"
			}
			return strconv.Itoa(int(*f.DateKey))
		})
	if err != nil {
		err = errors.Wrap(err, "write gold fact_sales")
	}
	metrics.RecordStage(StageGold, tableFactSales, err, r.now().Sub(start))
	metrics.RecordRows(StageGold, tableFactSales, "written", int64(len(facts)))
	if err == nil {
		r.log.Info("gold table built", "table", tableFactSales, "rows", len(facts))
	}
	return err
}

// runQuality validates the silver tables and the sales fact, logs every
// result, and fails the stage per the gating configuration.
func (r *Runner) runQuality(ctx context.Context) error {
	customers, err := store.ReadTable[silver.Customer](filepath.Join(r.cfg.Paths.Silver, schema.Customers))
	if err != nil {
		return errors.Wrap(err, "read silver customers")
	}
	products, err := store.ReadTable[silver.Product](filepath.Join(r.cfg.Paths.Silver, schema.Products))
	if err != nil {
		return errors.Wrap(err, "read silver products")
	}
	orders, err := store.ReadTable[silver.Order](filepath.Join(r.cfg.Paths.Silver, schema.Orders))
	if err != nil {
		return errors.Wrap(err, "read silver orders")
	}
	items, err := store.ReadTable[silver.OrderItem](filepath.Join(r.cfg.Paths.Silver, schema.OrderItems))
	if err != nil {
		return errors.Wrap(err, "read silver order_items")
	}
	facts, err := store.ReadTable[gold.FactSales](filepath.Join(r.cfg.Paths.Gold, tableFactSales))
	if err != nil {
		return errors.Wrap(err, "read gold fact_sales")
	}
	dimCustomer, err := store.ReadTable[gold.DimCustomer](filepath.Join(r.cfg.Paths.Gold, tableDimCustomer))
	if err != nil {
		return errors.Wrap(err, "read gold dim_customer")
	}
	dimProduct, err := store.ReadTable[gold.DimProduct](filepath.Join(r.cfg.Paths.Gold, tableDimProduct))
	if err != nil {
		return errors.Wrap(err, "read gold dim_product")
	}

	now := r.now().UTC()
	maxAge := time.Duration(r.cfg.Quality.FreshnessHours) * time.Hour

	vc := quality.ValidateCustomers(customers)
	vc.CheckFreshness("_ingested_at", func(c silver.Customer) time.Time { return c.IngestedAt }, maxAge, now, quality.SeverityWarning)
	vp := quality.ValidateProducts(products)
	vp.CheckFreshness("_ingested_at", func(p silver.Product) time.Time { return p.IngestedAt }, maxAge, now, quality.SeverityWarning)
	vo := quality.ValidateOrders(orders, customers)
	vo.CheckFreshness("_ingested_at", func(o silver.Order) time.Time { return o.IngestedAt }, maxAge, now, quality.SeverityWarning)
	vi := quality.ValidateOrderItems(items, orders, products)
	vf := quality.ValidateFactSales(facts, dimCustomer, dimProduct)

	failed := false
	gate := func(table string, results []quality.Result, allPassed bool) {
		var pass, fail int64
		for _, res := range results {
			if res.Passed {
				pass++
			} else {
				fail++
			}
		}
		metrics.RecordQualityChecks(table, pass, fail)
		if !allPassed {
			failed = true
		}
	}

	include := r.cfg.Quality.IncludeWarnings
	vc.Log(r.log)
	gate(vc.Table(), vc.Results(), vc.AllPassed(include))
	vp.Log(r.log)
	gate(vp.Table(), vp.Results(), vp.AllPassed(include))
	vo.Log(r.log)
	gate(vo.Table(), vo.Results(), vo.AllPassed(include))
	vi.Log(r.log)
	gate(vi.Table(), vi.Results(), vi.AllPassed(include))
	vf.Log(r.log)
	gate(vf.Table(), vf.Results(), vf.AllPassed(include))

	if failed && r.cfg.Quality.FailOnError {
		return errors.New("quality checks failed")
	}
	if failed {
		r.log.Warn("quality checks failed, continuing per configuration")
	}
	return nil
}

// loadWarehouse serves every gold table to Postgres. The stage is a no-op
// without a configured DSN.
func (r *Runner) loadWarehouse(ctx context.Context) error {
	if r.cfg.Warehouse.DSN == "" {
		r.log.Info("no warehouse DSN configured, skipping load")
		return nil
	}
	loader, closeFn, err := warehouse.New(ctx, warehouse.Config{
		DSN:    r.cfg.Warehouse.DSN,
		Schema: r.cfg.Warehouse.Schema,
	})
	if err != nil {
		return err
	}
	defer closeFn()

	if err := loader.EnsureSchema(ctx); err != nil {
		return err
	}

	if err := loadGold(ctx, r, tableDimCustomer, loader.LoadDimCustomer); err != nil {
		return err
	}
	if err := loadGold(ctx, r, tableDimProduct, loader.LoadDimProduct); err != nil {
		return err
	}
	if err := loadGold(ctx, r, tableDimDate, loader.LoadDimDate); err != nil {
		return err
	}
	if err := loadGold(ctx, r, tableFactSales, loader.LoadFactSales); err != nil {
		return err
	}
	if err := loadGold(ctx, r, tableDailySales, loader.LoadDailySalesSummary); err != nil {
		return err
	}
	return loadGold(ctx, r, tableProductPerf, loader.LoadProductPerformance)
}

func loadGold[T any](ctx context.Context, r *Runner, table string, load func(context.Context, *slog.Logger, []T) error) error {
	start := r.now()
	err := func() error {
		rows, err := store.ReadTable[T](filepath.Join(r.cfg.Paths.Gold, table))
		if err != nil {
			return errors.Wrapf(err, "read gold %s", table)
		}
		return load(ctx, r.log, rows)
	}()
	metrics.RecordStage(StageWarehouse, table, err, r.now().Sub(start))
	return err
}
