package warehouse

import (
	"strings"
	"testing"
)

func TestPgIdent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"gold", `"gold"`},
		{"week-52", `"week-52"`},
		{`evil"name`, `"evil""name"`},
	}
	for _, c := range cases {
		if got := pgIdent(c.in); got != c.want {
			t.Errorf("pgIdent(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestCreateTableStmts(t *testing.T) {
	stmts := createTableStmts("gold")
	if len(stmts) != 6 {
		t.Fatalf("expected 6 tables, got %d", len(stmts))
	}
	tables := []string{
		"dim_customer", "dim_product", "dim_date",
		"fact_sales", "agg_daily_sales", "agg_product_performance",
	}
	for i, table := range tables {
		if !strings.Contains(stmts[i], `"gold".`+table) {
			t.Errorf("statement %d does not target gold.%s", i, table)
		}
		if !strings.HasPrefix(stmts[i], "CREATE TABLE IF NOT EXISTS") {
			t.Errorf("statement %d is not idempotent", i)
		}
	}
}

// Every COPY column list must match the DDL for its table, otherwise loads
// fail at runtime.
func TestColumnListsMatchDDL(t *testing.T) {
	stmts := createTableStmts("gold")
	cases := []struct {
		stmt string
		cols []string
	}{
		{stmts[0], dimCustomerCols},
		{stmts[1], dimProductCols},
		{stmts[2], dimDateCols},
		{stmts[3], factSalesCols},
		{stmts[4], dailySalesCols},
		{stmts[5], productPerfCols},
	}
	for i, c := range cases {
		for _, col := range c.cols {
			if !strings.Contains(c.stmt, "\n\t\t\t"+col+" ") {
				t.Errorf("table %d: column %q missing from DDL", i, col)
			}
		}
	}
}
