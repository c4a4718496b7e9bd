package xlsxread

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveTable_FirstRowHeader(t *testing.T) {
	rows := [][]string{
		{"name", "dob", "notes"},
		{"Rossi", "05/06/1990", "scad 01/02"},
		{"Bianchi", "01/01/2000"},
	}

	tab, err := ResolveTable("QUAS", rows, nil, []string{"name", "dob"})
	if err != nil {
		t.Fatalf("ResolveTable: %v", err)
	}
	if !reflect.DeepEqual(tab.Columns, []string{"name", "dob", "notes"}) {
		t.Errorf("columns: got %v", tab.Columns)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("got %d data rows, want 2", len(tab.Rows))
	}
	if !reflect.DeepEqual(tab.SourceRow, []int{2, 3}) {
		t.Errorf("source rows: got %v, want [2 3]", tab.SourceRow)
	}
	// Short row padded to header width.
	if len(tab.Rows[1]) != 3 || tab.Rows[1][2] != "" {
		t.Errorf("short row not padded: %v", tab.Rows[1])
	}
}

func TestResolveTable_HeaderTrimmed(t *testing.T) {
	rows := [][]string{
		{" name ", "dob "},
		{"Rossi", "05/06/1990"},
	}

	tab, err := ResolveTable("QUAS", rows, nil, []string{"name", "dob"})
	if err != nil {
		t.Fatalf("ResolveTable: %v", err)
	}
	if !reflect.DeepEqual(tab.Columns, []string{"name", "dob"}) {
		t.Errorf("columns not trimmed: got %v", tab.Columns)
	}
}

func TestResolveTable_FallbackHeader(t *testing.T) {
	rows := [][]string{
		{"Rossi", "05/06/1990", "scad 01/02"},
		{"Bianchi", "01/01/2000", ""},
	}
	fallback := []string{"name", "dob", "notes"}

	tab, err := ResolveTable("QUAS", rows, fallback, []string{"name", "dob"})
	if err != nil {
		t.Fatalf("ResolveTable: %v", err)
	}
	if !reflect.DeepEqual(tab.Columns, fallback) {
		t.Errorf("columns: got %v", tab.Columns)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("got %d data rows, want 2", len(tab.Rows))
	}
	if !reflect.DeepEqual(tab.SourceRow, []int{1, 2}) {
		t.Errorf("source rows: got %v, want [1 2]", tab.SourceRow)
	}
	if tab.Rows[0][0] != "Rossi" {
		t.Errorf("first data row: got %v", tab.Rows[0])
	}
}

func TestResolveTable_Errors(t *testing.T) {
	required := []string{"name", "dob"}

	tests := []struct {
		name        string
		rows        [][]string
		fallback    []string
		wantMissing []string
		wantDetail  bool
	}{
		{
			name:        "empty_sheet",
			rows:        nil,
			wantMissing: []string{"name", "dob"},
		},
		{
			name:        "no_fallback",
			rows:        [][]string{{"name", "something"}},
			wantMissing: []string{"dob"},
		},
		{
			name:        "fallback_incomplete",
			rows:        [][]string{{"Rossi", "05/06/1990"}},
			fallback:    []string{"name", "birth"},
			wantMissing: []string{"dob"},
		},
		{
			name: "row_wider_than_header",
			rows: [][]string{
				{"name", "dob"},
				{"Rossi", "05/06/1990", "extra"},
			},
			wantDetail: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTable("QUAS", tt.rows, tt.fallback, required)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("got %v, want SchemaError", err)
			}
			if schemaErr.Sheet != "QUAS" {
				t.Errorf("sheet: got %q", schemaErr.Sheet)
			}
			if !reflect.DeepEqual(schemaErr.Missing, tt.wantMissing) {
				t.Errorf("missing: got %v, want %v", schemaErr.Missing, tt.wantMissing)
			}
			if tt.wantDetail && schemaErr.Detail == "" {
				t.Error("want non-empty detail")
			}
		})
	}
}

func TestColumnIndex(t *testing.T) {
	tab := &Table{Columns: []string{"name", "dob", "notes"}}

	if i, ok := tab.ColumnIndex("dob"); !ok || i != 1 {
		t.Errorf("dob: got (%d, %v), want (1, true)", i, ok)
	}
	if _, ok := tab.ColumnIndex("missing"); ok {
		t.Error("missing column reported present")
	}
}
