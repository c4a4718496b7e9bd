package xlsxread

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "QUAS"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if _, err := f.NewSheet("Tabella"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}

	rows := map[string][][]string{
		"QUAS": {
			{"name", "dob"},
			{"Rossi", "05/06/1990"},
		},
		"Tabella": {
			{"ignored"},
			{"name", "dob"},
		},
	}
	for sheet, data := range rows {
		for i, row := range data {
			cells := make([]interface{}, len(row))
			for j, v := range row {
				cells[j] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.xlsx"))
	if err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.xlsx")
	writeTestWorkbook(t, path)

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	if wb.Path() != path {
		t.Errorf("Path: got %q, want %q", wb.Path(), path)
	}
	if !wb.HasSheet("QUAS") || !wb.HasSheet("Tabella") {
		t.Error("expected sheets not reported")
	}
	if wb.HasSheet("OSR") {
		t.Error("absent sheet reported present")
	}

	rows, err := wb.Rows("QUAS")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	want := [][]string{
		{"name", "dob"},
		{"Rossi", "05/06/1990"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows: got %v, want %v", rows, want)
	}

	if _, err := wb.Rows("OSR"); err == nil {
		t.Error("want error for absent sheet")
	}
}
