package datagen

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse/internal/config"
	"lakehouse/internal/schema"
)

func testCfg() config.Generator {
	return config.Generator{
		Seed:         42,
		Customers:    50,
		Products:     30,
		Orders:       100,
		MaxItems:     5,
		DirtyRowPct:  10,
		DuplicatePct: 5,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := New(testCfg()).Generate()
	b := New(testCfg()).Generate()
	assert.Equal(t, a, b)

	other := testCfg()
	other.Seed = 7
	c := New(other).Generate()
	assert.NotEqual(t, a.Customers, c.Customers)
}

func TestGenerateShapes(t *testing.T) {
	cfg := testCfg()
	d := New(cfg).Generate()

	// Duplicates only add rows, never remove them.
	assert.GreaterOrEqual(t, len(d.Customers), cfg.Customers)
	assert.Equal(t, cfg.Products, countDistinct(d.Products, 0))
	assert.GreaterOrEqual(t, len(d.Orders), cfg.Orders)
	assert.NotEmpty(t, d.OrderItems)

	for _, table := range schema.TableNames() {
		tab, err := schema.Lookup(table)
		require.NoError(t, err)
		for _, row := range d.Rows(table) {
			assert.Len(t, row, len(tab.Columns), "table %s", table)
		}
	}
}

// Dirty rows corrupt attribute columns only, so every order still points at
// a generated customer and every item at a generated order and product.
func TestGenerateReferentialIntegrity(t *testing.T) {
	d := New(testCfg()).Generate()

	customers := idSet(d.Customers, 0)
	products := idSet(d.Products, 0)
	orders := idSet(d.Orders, 0)

	for _, row := range d.Orders {
		assert.Contains(t, customers, row[1])
	}
	for _, row := range d.OrderItems {
		assert.Contains(t, orders, row[1])
		assert.Contains(t, products, row[2])
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	g := New(testCfg())
	d := g.Generate()
	require.NoError(t, g.WriteCSV(slog.New(slog.DiscardHandler), dir, d))

	for _, table := range schema.TableNames() {
		tab, err := schema.Lookup(table)
		require.NoError(t, err)

		f, err := os.Open(filepath.Join(dir, table+".csv"))
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)

		require.NotEmpty(t, records)
		assert.Equal(t, tab.ColumnNames(), records[0])
		assert.Len(t, records, len(d.Rows(table))+1)
	}
}

func idSet(rows [][]string, col int) map[string]bool {
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[row[col]] = true
	}
	return out
}

func countDistinct(rows [][]string, col int) int {
	return len(idSet(rows, col))
}
