package schema

import (
	"strings"
	"testing"
)

func TestLookupKnownTables(t *testing.T) {
	for _, name := range TableNames() {
		tab, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if tab.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, tab.Name)
		}
		if tab.NaturalKey == "" {
			t.Errorf("table %q has no natural key", name)
		}
		if len(tab.RequiredColumns()) == 0 {
			t.Errorf("table %q marks no required columns", name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("invoices"); err == nil {
		t.Fatal("expected error for unregistered table")
	}
}

func TestCheckHeader(t *testing.T) {
	tab, err := Lookup(OrderItems)
	if err != nil {
		t.Fatal(err)
	}

	exact := tab.ColumnNames()
	if err := tab.CheckHeader(exact); err != nil {
		t.Errorf("exact header rejected: %v", err)
	}

	// Column order is not part of the contract.
	reversed := make([]string, len(exact))
	for i, c := range exact {
		reversed[len(exact)-1-i] = c
	}
	if err := tab.CheckHeader(reversed); err != nil {
		t.Errorf("reordered header rejected: %v", err)
	}

	missing := exact[:len(exact)-1]
	if err := tab.CheckHeader(missing); err == nil {
		t.Error("header with missing column accepted")
	} else if !strings.Contains(err.Error(), "line_total") {
		t.Errorf("error does not name the missing column: %v", err)
	}

	extra := append(append([]string{}, exact...), "surprise")
	if err := tab.CheckHeader(extra); err == nil {
		t.Error("header with extra column accepted")
	} else if !strings.Contains(err.Error(), "surprise") {
		t.Errorf("error does not name the extra column: %v", err)
	}
}
