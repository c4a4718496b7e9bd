package lookup

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/healthforce/claimprep/internal/xlsxread"
)

func writeCategoryFile(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.xlsx")
	writeWorkbook(t, path, []string{"Codice"}, map[string][][]string{"Codice": rows})
	return path
}

func TestLoadCategoryTable(t *testing.T) {
	path := writeCategoryFile(t, [][]string{
		{"Codice Esame SAP", "ID prestazioni"},
		{"VIS001", "2"},
		{"VIS001", "2"},
		{"FIS010", "3"},
		{"FIS010", "9"},
		{"ECO200", "6.0"},
		{"", "4"},
		{"BAD001", "n/a"},
	})

	tab, err := LoadCategoryTable(path)
	if err != nil {
		t.Fatalf("LoadCategoryTable: %v", err)
	}

	// Exact duplicate collapsed, empty code skipped.
	if tab.Len() != 5 {
		t.Errorf("Len: got %d, want 5", tab.Len())
	}

	if got := tab.Lookup("VIS001"); len(got) != 1 || got[0].CategoryID != 2 {
		t.Errorf("VIS001: got %v", got)
	}
	if got := tab.Lookup("FIS010"); len(got) != 2 {
		t.Errorf("FIS010: got %v, want two entries", got)
	} else if got[0].CategoryID != 3 || got[1].CategoryID != 9 {
		t.Errorf("FIS010 order: got %v", got)
	}
	if got := tab.Lookup("ECO200"); len(got) != 1 || got[0].CategoryID != 6 {
		t.Errorf("ECO200 float id: got %v", got)
	}
	if got := tab.Lookup("BAD001"); len(got) != 1 || got[0].CategoryID != 0 {
		t.Errorf("BAD001 unparseable id: got %v", got)
	}
	if got := tab.Lookup("NOPE"); len(got) != 0 {
		t.Errorf("unknown code: got %v", got)
	}
}

func TestLoadCategoryTable_MissingFile(t *testing.T) {
	_, err := LoadCategoryTable(filepath.Join(t.TempDir(), "absent.xlsx"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("got %v, want LoadError", err)
	}
}

func TestLoadCategoryTable_MissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.xlsx")
	writeWorkbook(t, path, []string{"Altro"}, map[string][][]string{
		"Altro": {{"Codice Esame SAP", "ID prestazioni"}},
	})

	_, err := LoadCategoryTable(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("got %v, want LoadError", err)
	}
	if loadErr.Sheet != "Codice" {
		t.Errorf("sheet: got %q, want Codice", loadErr.Sheet)
	}
}

func TestLoadCategoryTable_MissingColumns(t *testing.T) {
	path := writeCategoryFile(t, [][]string{
		{"Codice Esame SAP", "Descrizione"},
		{"VIS001", "visita"},
	})

	_, err := LoadCategoryTable(path)
	var schemaErr *xlsxread.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("got %v, want wrapped SchemaError", err)
	}
}

func TestLoadCategoryTable_NoRows(t *testing.T) {
	path := writeCategoryFile(t, [][]string{
		{"Codice Esame SAP", "ID prestazioni"},
	})

	if _, err := LoadCategoryTable(path); err == nil {
		t.Fatal("want error for empty table")
	}
}
