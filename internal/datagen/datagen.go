// Package datagen produces seeded synthetic source files for the pipeline:
// interconnected customers, products, orders and order items with realistic
// distributions, plus controlled amounts of dirty and duplicated rows so
// the cleaning and dedup stages have something to do.
//
// All randomness flows from one seeded generator, so a given configuration
// always produces byte-identical files.
package datagen

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"lakehouse/internal/config"
	"lakehouse/internal/schema"
)

// Dataset holds generated rows per table, in schema contract column order.
type Dataset struct {
	Customers  [][]string
	Products   [][]string
	Orders     [][]string
	OrderItems [][]string
}

// Rows returns the rows for a registered table name.
func (d Dataset) Rows(table string) [][]string {
	switch table {
	case schema.Customers:
		return d.Customers
	case schema.Products:
		return d.Products
	case schema.Orders:
		return d.Orders
	case schema.OrderItems:
		return d.OrderItems
	}
	return nil
}

// Generator produces one reproducible dataset.
type Generator struct {
	cfg   config.Generator
	rng   *rand.Rand
	start time.Time
	end   time.Time
}

// New returns a Generator seeded from the configuration. Order dates span
// the two calendar years ending at the end date.
func New(cfg config.Generator) *Generator {
	return &Generator{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		end:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Generate builds all four tables. Orders reference generated customers and
// products, so clean rows always satisfy referential integrity; dirty and
// duplicate rows are injected afterwards at the configured rates.
func (g *Generator) Generate() Dataset {
	customers, customerIDs, countryByCustomer, cityByCustomer := g.customers()
	products, productIDs, priceByProduct := g.products()
	orders, items := g.orders(customerIDs, countryByCustomer, cityByCustomer, productIDs, priceByProduct)

	var d Dataset
	d.Customers = g.postProcess(schema.Customers, customers)
	d.Products = g.postProcess(schema.Products, products)
	d.Orders = g.postProcess(schema.Orders, orders)
	d.OrderItems = g.postProcess(schema.OrderItems, items)
	return d
}

// WriteCSV writes each table to <dir>/<table>.csv with the contract header.
func (g *Generator) WriteCSV(log *slog.Logger, dir string, d Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	for _, table := range schema.TableNames() {
		tab, err := schema.Lookup(table)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, table+".csv")
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		w := csv.NewWriter(f)
		if err := w.Write(tab.ColumnNames()); err != nil {
			f.Close()
			return errors.Wrapf(err, "write header of %s", path)
		}
		if err := w.WriteAll(d.Rows(table)); err != nil {
			f.Close()
			return errors.Wrapf(err, "write rows of %s", path)
		}
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, "close %s", path)
		}
		log.Info("wrote source file", "table", table, "rows", len(d.Rows(table)), "path", path)
	}
	return nil
}

func (g *Generator) customers() (rows [][]string, ids []string, country, city map[string]string) {
	country = make(map[string]string, g.cfg.Customers)
	city = make(map[string]string, g.cfg.Customers)
	for i := 0; i < g.cfg.Customers; i++ {
		id := g.hexID("CUST")
		ids = append(ids, id)

		cc := countryCodes[g.weighted(countryWeights)]
		ct := pick(g.rng, citiesByCountry[cc])
		country[id] = cc
		city[id] = ct

		first := pick(g.rng, firstNames)
		last := pick(g.rng, lastNames)
		email := strings.ToLower(first + "." + last + strconv.Itoa(g.rng.Intn(1000)) + "@" + pick(g.rng, emailDomains))

		phone := ""
		if g.rng.Float64() > 0.3 {
			phone = fmt.Sprintf("+%d %d %d", g.rng.Intn(89)+10, g.rng.Intn(900)+100, g.rng.Intn(9000000)+1000000)
		}
		address := ""
		if g.rng.Float64() > 0.2 {
			address = fmt.Sprintf("%d %s", g.rng.Intn(200)+1, pick(g.rng, streetNames))
		}

		createdAt := g.dateBetween(g.start, g.end)

		rows = append(rows, []string{
			id, email, first, last, phone, cc, ct, address,
			createdAt.Format(schema.Layout), "",
		})
	}
	return rows, ids, country, city
}

func (g *Generator) products() (rows [][]string, ids []string, price map[string]float64) {
	price = make(map[string]float64, g.cfg.Products)
	count := 0
	for count < g.cfg.Products {
		for _, cat := range categories {
			tpl := productTemplates[cat]
			for _, p := range tpl.products {
				variants := g.rng.Intn(3) + 2
				for v := 0; v < variants; v++ {
					if count >= g.cfg.Products {
						return rows, ids, price
					}
					id := g.hexID("PROD")
					brand := pick(g.rng, tpl.brands)

					unit := round2(p.minPrice + g.rng.Float64()*(p.maxPrice-p.minPrice))
					cost := round2(unit * (0.4 + g.rng.Float64()*0.3))

					ids = append(ids, id)
					price[id] = unit

					rows = append(rows, []string{
						id,
						fmt.Sprintf("%s-%s-%04d", skuPrefix(brand), skuPrefix(cat), count),
						brand + " " + p.name + " " + pick(g.rng, modelWords),
						p.name + " by " + brand + ", " + pick(g.rng, descriptionTails),
						cat,
						p.name,
						brand,
						formatFloat(unit),
						formatFloat(cost),
						strconv.Itoa(g.rng.Intn(501)),
						strconv.FormatBool(g.rng.Float64() > 0.1),
						g.dateBetween(g.start, g.end).Format(schema.Layout),
					})
					count++
				}
			}
		}
	}
	return rows, ids, price
}

func (g *Generator) orders(
	customerIDs []string,
	countryByCustomer, cityByCustomer map[string]string,
	productIDs []string,
	priceByProduct map[string]float64,
) (orders, items [][]string) {
	// 80/20: the first fifth of customers place most orders.
	vipCut := len(customerIDs) / 5
	if vipCut == 0 {
		vipCut = len(customerIDs)
	}

	for i := 0; i < g.cfg.Orders; i++ {
		orderID := g.hexID("ORD")

		var customerID string
		if g.rng.Float64() < 0.8 {
			customerID = customerIDs[g.rng.Intn(vipCut)]
		} else {
			customerID = customerIDs[g.rng.Intn(len(customerIDs))]
		}

		orderDate := g.orderDate()

		numItems := g.weighted([]int{40, 30, 15, 10, 5}) + 1
		if numItems > g.cfg.MaxItems {
			numItems = g.cfg.MaxItems
		}

		subtotal := 0.0
		seen := make(map[string]bool, numItems)
		for j := 0; j < numItems; j++ {
			productID := productIDs[g.rng.Intn(len(productIDs))]
			if seen[productID] {
				continue
			}
			seen[productID] = true

			unit := priceByProduct[productID]
			quantity := g.weighted([]int{50, 25, 15, 7, 3}) + 1
			discount := 0.0
			if g.rng.Float64() < 0.2 {
				discount = float64(pick(g.rng, []int{5, 10, 15, 20, 25}))
			}
			lineTotal := round2(float64(quantity) * unit * (1 - discount/100))
			subtotal += lineTotal

			items = append(items, []string{
				g.hexID("ITEM"), orderID, productID,
				strconv.Itoa(quantity), formatFloat(unit), formatFloat(discount), formatFloat(lineTotal),
			})
		}
		subtotal = round2(subtotal)

		cc := countryByCustomer[customerID]
		taxRate := 0.19
		if cc == "NL" || cc == "BE" {
			taxRate = 0.21
		}
		tax := round2(subtotal * taxRate)
		shipping := 0.0
		if subtotal <= 50 {
			shipping = round2(3.99 + g.rng.Float64()*6)
		}
		orderDiscount := 0.0
		if subtotal > 200 {
			orderDiscount = round2(subtotal * 0.05)
		}
		total := round2(subtotal + tax + shipping - orderDiscount)

		orders = append(orders, []string{
			orderID, customerID, orderDate.Format(schema.Layout),
			g.status(orderDate), pick(g.rng, paymentMethods),
			formatFloat(subtotal), formatFloat(tax), formatFloat(shipping),
			formatFloat(orderDiscount), formatFloat(total),
			"EUR", cc, cityByCustomer[customerID],
		})
	}
	return orders, items
}

// orderDate samples a date with higher density in November and December.
func (g *Generator) orderDate() time.Time {
	d := g.dateBetween(g.start, g.end)
	if g.rng.Float64() > seasonWeight[d.Month()] && g.rng.Float64() < 0.4 {
		month := time.November
		if g.rng.Intn(2) == 1 {
			month = time.December
		}
		day := d.Day()
		if month == time.November && day > 30 {
			day = 30
		}
		d = time.Date(d.Year(), month, day, d.Hour(), d.Minute(), d.Second(), 0, time.UTC)
	}
	return d
}

// status depends on order age relative to the generation window's end.
func (g *Generator) status(orderDate time.Time) string {
	days := int(g.end.Sub(orderDate).Hours() / 24)
	switch {
	case days < 1:
		return pick(g.rng, []string{"pending", "confirmed"})
	case days < 3:
		return []string{"confirmed", "shipped"}[g.weighted([]int{30, 70})]
	case days < 7:
		return []string{"shipped", "delivered"}[g.weighted([]int{20, 80})]
	default:
		return []string{"delivered", "cancelled", "returned"}[g.weighted([]int{92, 5, 3})]
	}
}

// postProcess injects dirty values and duplicate rows at the configured
// rates. Duplicates are exact copies appended after the original, which the
// silver dedup resolves by lineage.
func (g *Generator) postProcess(table string, rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if g.rng.Float64()*100 < g.cfg.DirtyRowPct {
			row = g.corrupt(table, row)
		}
		out = append(out, row)
		if g.rng.Float64()*100 < g.cfg.DuplicatePct {
			dup := make([]string, len(row))
			copy(dup, row)
			out = append(out, dup)
		}
	}
	return out
}

// corrupt applies one table-appropriate defect to a copy of the row. The
// natural key column is never touched.
func (g *Generator) corrupt(table string, row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	switch table {
	case schema.Customers:
		switch g.rng.Intn(4) {
		case 0:
			out[1] = "" // email
		case 1:
			out[1] = "not-an-email"
		case 2:
			out[5] = "" // country
		case 3:
			out[2] = "  " + strings.ToUpper(out[2]) + "  " // first_name casing and padding
		}
	case schema.Products:
		switch g.rng.Intn(3) {
		case 0:
			out[7] = "" // price
		case 1:
			out[7] = "-" + out[7]
		case 2:
			out[9] = "" // stock_quantity
		}
	case schema.Orders:
		switch g.rng.Intn(3) {
		case 0:
			out[2] = "" // order_date
		case 1:
			out[3] = "unknown" // status outside the contract set
		case 2:
			if v, err := strconv.ParseFloat(out[9], 64); err == nil {
				out[9] = formatFloat(v + 5) // total no longer reconciles
			}
		}
	case schema.OrderItems:
		switch g.rng.Intn(3) {
		case 0:
			out[3] = "0" // quantity below minimum
		case 1:
			out[4] = "" // unit_price
		case 2:
			out[5] = "150" // discount_percent out of range
		}
	}
	return out
}

func (g *Generator) hexID(prefix string) string {
	const digits = "0123456789ABCDEF"
	b := make([]byte, 8)
	for i := range b {
		b[i] = digits[g.rng.Intn(16)]
	}
	return prefix + "-" + string(b)
}

func (g *Generator) dateBetween(start, end time.Time) time.Time {
	span := int(end.Sub(start).Hours() / 24)
	d := start.AddDate(0, 0, g.rng.Intn(span+1))
	return d.Add(time.Duration(g.rng.Intn(24*3600)) * time.Second)
}

// weighted returns an index sampled in proportion to weights.
func (g *Generator) weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := g.rng.Intn(total)
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}

// skuPrefix is the first three letters of a name, uppercased.
func skuPrefix(s string) string {
	if len(s) > 3 {
		s = s[:3]
	}
	return strings.ToUpper(s)
}

func pick[T any](rng *rand.Rand, options []T) T {
	return options[rng.Intn(len(options))]
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
